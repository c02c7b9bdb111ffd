package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateShopQR encodes a shop's public URL as a PNG QR code.
	GenerateShopQR(shopURL string) ([]byte, error)
}
