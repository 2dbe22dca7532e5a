// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxPaymentHistory bounds the number of payment records kept per user,
// most recent first.
const MaxPaymentHistory = 50

// User is the core entity in the system, representing a unique shopper account.
// The mobile number is the login identifier; accounts are created on first
// successful verification and are never deleted.
type User struct {
	ID             uuid.UUID       // The Global Unique Identifier (GUID) for the user.
	Mobile         string          // The user's mobile number, unique login identifier.
	Name           string          // The user's display name.
	Email          string          // The user's contact email (optional).
	JoinedAt       time.Time       // Timestamp of when this account was created.
	OrderIDs       []string        // References to the user's orders, most recent first.
	PaymentHistory []PaymentRecord // Successful payments, most recent first, capped at MaxPaymentHistory.
	UpdatedAt      time.Time       // Timestamp of the last modification to this user's data.
}

// PaymentRecord is a compact view of a successful payment kept on the user.
type PaymentRecord struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Gateway       string          `json:"gateway"`
	Timestamp     time.Time       `json:"timestamp"`
	Status        string          `json:"status"`
}

// RecordPayment prepends a payment record and evicts the oldest entries
// beyond MaxPaymentHistory.
func (u *User) RecordPayment(rec PaymentRecord) {
	u.PaymentHistory = append([]PaymentRecord{rec}, u.PaymentHistory...)
	if len(u.PaymentHistory) > MaxPaymentHistory {
		u.PaymentHistory = u.PaymentHistory[:MaxPaymentHistory]
	}
}

// RecordOrder prepends an order reference to the user's order history.
func (u *User) RecordOrder(orderID string) {
	u.OrderIDs = append([]string{orderID}, u.OrderIDs...)
}
