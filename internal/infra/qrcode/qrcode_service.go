// Package qrcode renders consumer verification QR codes.
package qrcode

import (
	"fmt"
	"strings"

	"agritrace/internal/domain/service"
	"agritrace/internal/errors"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance. The generated
// codes encode `<baseURL>/verify/<productID>`, the public verification page
// whose load fetches the history and seals the chain.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateVerificationQR renders a PNG QR code for the product's
// verification URL.
func (s *qrcodeService) GenerateVerificationQR(productID string) ([]byte, error) {
	qrCode, err := qrcode.New(s.VerificationURL(productID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// VerificationURL returns the URL the QR code for a product encodes.
func (s *qrcodeService) VerificationURL(productID string) string {
	return fmt.Sprintf("%s/verify/%s", s.baseURL, productID)
}
