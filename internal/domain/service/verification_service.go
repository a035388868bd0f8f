package service

import "context"

// FarmerVerification is the canned result of a government farmer-id lookup.
type FarmerVerification struct {
	Verified         bool     `json:"verified"`
	FarmerID         string   `json:"farmerId"`
	Name             string   `json:"name"`
	Village          string   `json:"village"`
	District         string   `json:"district"`
	State            string   `json:"state"`
	LandHolding      string   `json:"landHolding"`
	Crops            []string `json:"crops"`
	CredibilityScore int      `json:"credibilityScore"`
	VerificationDate string   `json:"verificationDate"`
}

// BusinessVerification is the canned result of a distributor-license or
// retailer-registration lookup.
type BusinessVerification struct {
	Verified         bool   `json:"verified"`
	LicenseNumber    string `json:"licenseNumber"`
	BusinessName     string `json:"businessName"`
	GSTNumber        string `json:"gstNumber"`
	FSSAILicense     string `json:"fssaiLicense"`
	CredibilityScore int    `json:"credibilityScore"`
	VerificationDate string `json:"verificationDate"`
}

// MarketPrice is a canned commodity price quote.
type MarketPrice struct {
	Commodity  string  `json:"commodity"`
	Variety    string  `json:"variety"`
	Market     string  `json:"market"`
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
	ModalPrice float64 `json:"modalPrice"`
	PriceUnit  string  `json:"priceUnit"`
	Trend      string  `json:"trend"`
	Date       string  `json:"date"`
}

// VerificationService defines the interface for external identity and market
// lookups. These are mocked government/market integrations; they hold no
// state relevant to the ledger's correctness and their failures never
// propagate into ledger mutations.
type VerificationService interface {
	// VerifyFarmer checks a farmer's government id.
	VerifyFarmer(ctx context.Context, farmerID, aadhaarNumber string) (*FarmerVerification, error)

	// VerifyDistributor checks a distributor's license.
	VerifyDistributor(ctx context.Context, licenseNumber, gstNumber string) (*BusinessVerification, error)

	// VerifyRetailer checks a retailer's shop registration.
	VerifyRetailer(ctx context.Context, shopLicense, fssaiNumber string) (*BusinessVerification, error)

	// MarketPrices returns current mandi prices for a commodity.
	MarketPrices(ctx context.Context, commodity string) ([]*MarketPrice, error)
}
