package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateTrackingQR generates a QR code image for an order tracking number
	GenerateTrackingQR(trackingNumber string) ([]byte, error)
}
