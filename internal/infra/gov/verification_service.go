// Package gov implements the VerificationService with canned responses that
// stand in for government identity registries and mandi price feeds. A real
// deployment would call the respective APIs; the shapes returned here match
// what those integrations would produce.
package gov

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"agritrace/internal/domain/service"
	"agritrace/internal/errors"
)

type verificationService struct {
	logger *slog.Logger
}

// NewVerificationService creates the mock verification gateway.
func NewVerificationService(logger *slog.Logger) service.VerificationService {
	return &verificationService{logger: logger}
}

// VerifyFarmer checks a farmer's government id against the mocked registry.
func (s *verificationService) VerifyFarmer(ctx context.Context, farmerID, aadhaarNumber string) (*service.FarmerVerification, error) {
	if farmerID == "" || aadhaarNumber == "" {
		return nil, errors.New("farmer ID and Aadhaar number are required")
	}

	s.logger.Info("Farmer verification requested", slog.String("farmerId", farmerID))

	return &service.FarmerVerification{
		Verified:         true,
		FarmerID:         farmerID,
		Name:             "Ramesh Kumar",
		Village:          "Balangir",
		District:         "Balangir",
		State:            "Odisha",
		LandHolding:      "2.5 acres",
		Crops:            []string{"Rice", "Wheat", "Vegetables"},
		CredibilityScore: 85,
		VerificationDate: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// VerifyDistributor checks a distributor's license against the mocked registry.
func (s *verificationService) VerifyDistributor(ctx context.Context, licenseNumber, gstNumber string) (*service.BusinessVerification, error) {
	if licenseNumber == "" {
		return nil, errors.New("license number is required")
	}

	s.logger.Info("Distributor verification requested", slog.String("license", licenseNumber))

	return &service.BusinessVerification{
		Verified:         true,
		LicenseNumber:    licenseNumber,
		BusinessName:     "Odisha Agri Distributors Pvt Ltd",
		GSTNumber:        orDefault(gstNumber, "GST123456789"),
		FSSAILicense:     "FSSAI987654321",
		CredibilityScore: 92,
		VerificationDate: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// VerifyRetailer checks a retailer's shop registration against the mocked registry.
func (s *verificationService) VerifyRetailer(ctx context.Context, shopLicense, fssaiNumber string) (*service.BusinessVerification, error) {
	if shopLicense == "" {
		return nil, errors.New("shop license is required")
	}

	s.logger.Info("Retailer verification requested", slog.String("license", shopLicense))

	return &service.BusinessVerification{
		Verified:         true,
		LicenseNumber:    shopLicense,
		BusinessName:     "Maa Tarini Grocery Store",
		GSTNumber:        "GST987654321",
		FSSAILicense:     orDefault(fssaiNumber, "FSSAI456789123"),
		CredibilityScore: 78,
		VerificationDate: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// MarketPrices returns mocked mandi prices for a commodity.
func (s *verificationService) MarketPrices(ctx context.Context, commodity string) ([]*service.MarketPrice, error) {
	if commodity == "" {
		return nil, errors.New("commodity is required")
	}

	name := strings.ToUpper(commodity[:1]) + strings.ToLower(commodity[1:])
	date := time.Now().UTC().Format(time.RFC3339)

	return []*service.MarketPrice{
		{
			Commodity:  name,
			Variety:    "Standard",
			Market:     "Balangir Mandi",
			MinPrice:   2800,
			MaxPrice:   3200,
			ModalPrice: 3000,
			PriceUnit:  "per quintal",
			Trend:      "stable",
			Date:       date,
		},
		{
			Commodity:  name,
			Variety:    "Premium",
			Market:     fmt.Sprintf("%s APMC", name),
			MinPrice:   3100,
			MaxPrice:   3600,
			ModalPrice: 3350,
			PriceUnit:  "per quintal",
			Trend:      "rising",
			Date:       date,
		},
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
