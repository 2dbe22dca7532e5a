package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is the core entity for a shipping destination in a user's address book.
// Exactly one address holds IsDefault among a user's non-empty address set;
// the first address added is promoted automatically.
type Address struct {
	ID         uuid.UUID // The Global Unique Identifier (GUID) for the address.
	OwnerID    uuid.UUID // The ID of the user that owns this address.
	Name       string    // Recipient full name.
	Phone      string    // Recipient phone number.
	Street     string    // Street address.
	City       string    // City.
	State      string    // State or province.
	PostalCode string    // Postal code.
	Country    string    // Country.
	IsDefault  bool      // Indicates if this is the user's default shipping address.
	CreatedAt  time.Time // Timestamp of when this address was created.
	UpdatedAt  time.Time // Timestamp of the last modification.
}
