package service

// QRCodeService defines the interface for generating consumer verification
// QR codes. Scanning the code opens the product's verification page, which
// fetches the history and permanently seals the chain.
type QRCodeService interface {
	// GenerateVerificationQR renders a PNG QR code encoding the product's
	// verification URL.
	GenerateVerificationQR(productID string) ([]byte, error)

	// VerificationURL returns the URL the QR code for a product encodes.
	VerificationURL(productID string) string
}
