package gov

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationService_VerifyFarmer(t *testing.T) {
	svc := NewVerificationService(slog.Default())

	result, err := svc.VerifyFarmer(context.Background(), "OD/FARMER/2024/001234", "123456789012")
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, "OD/FARMER/2024/001234", result.FarmerID)
	assert.NotZero(t, result.CredibilityScore)
}

func TestVerificationService_VerifyFarmer_MissingFields(t *testing.T) {
	svc := NewVerificationService(slog.Default())

	_, err := svc.VerifyFarmer(context.Background(), "", "")
	assert.Error(t, err)
}

func TestVerificationService_VerifyDistributor(t *testing.T) {
	svc := NewVerificationService(slog.Default())

	result, err := svc.VerifyDistributor(context.Background(), "DL/OD/2024/5678", "")
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, "DL/OD/2024/5678", result.LicenseNumber)
	assert.NotEmpty(t, result.GSTNumber)
}

func TestVerificationService_VerifyRetailer(t *testing.T) {
	svc := NewVerificationService(slog.Default())

	result, err := svc.VerifyRetailer(context.Background(), "SL/OD/2024/9012", "FSSAI-1")
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, "FSSAI-1", result.FSSAILicense)
}

func TestVerificationService_MarketPrices(t *testing.T) {
	svc := NewVerificationService(slog.Default())

	prices, err := svc.MarketPrices(context.Background(), "rice")
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "Rice", prices[0].Commodity)
	assert.Greater(t, prices[0].MaxPrice, prices[0].MinPrice)

	_, err = svc.MarketPrices(context.Background(), "")
	assert.Error(t, err)
}
