package handler

import (
	"log/slog"
	"net/http"

	"agritrace/internal/delivery/http/response"
	"agritrace/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ExternalHandler fronts the mocked SMS and government/market integrations.
type ExternalHandler struct {
	notifier     service.NotificationService
	verification service.VerificationService
	logger       *slog.Logger
}

// NewExternalHandler is the constructor for ExternalHandler, injected by Fx.
func NewExternalHandler(notifier service.NotificationService, verification service.VerificationService, logger *slog.Logger) *ExternalHandler {
	return &ExternalHandler{
		notifier:     notifier,
		verification: verification,
		logger:       logger,
	}
}

type sendSMSInput struct {
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SendSMS dispatches a message through the mock SMS provider chain.
func (h *ExternalHandler) SendSMS(c echo.Context) error {
	var input sendSMSInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid SMS input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	receipt, err := h.notifier.Send(c.Request().Context(), input.Phone, input.Message)
	if err != nil {
		if receipt != nil && receipt.Queued {
			return response.Success(c, http.StatusAccepted, receipt, "SMS queued for retry")
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, receipt, "SMS dispatched")
}

type verifyFarmerInput struct {
	FarmerID      string `json:"farmerId" validate:"required"`
	AadhaarNumber string `json:"aadhaarNumber"`
}

// VerifyFarmer checks a farmer id against the mocked government registry.
func (h *ExternalHandler) VerifyFarmer(c echo.Context) error {
	var input verifyFarmerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.verification.VerifyFarmer(c.Request().Context(), input.FarmerID, input.AadhaarNumber)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Farmer verification completed")
}

type verifyDistributorInput struct {
	LicenseNumber string `json:"licenseNumber" validate:"required"`
	GSTNumber     string `json:"gstNumber"`
}

// VerifyDistributor checks a distributor license against the mocked registry.
func (h *ExternalHandler) VerifyDistributor(c echo.Context) error {
	var input verifyDistributorInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.verification.VerifyDistributor(c.Request().Context(), input.LicenseNumber, input.GSTNumber)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Distributor verification completed")
}

type verifyRetailerInput struct {
	ShopLicense string `json:"shopLicense" validate:"required"`
	FSSAINumber string `json:"fssaiNumber"`
}

// VerifyRetailer checks a retailer registration against the mocked registry.
func (h *ExternalHandler) VerifyRetailer(c echo.Context) error {
	var input verifyRetailerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.verification.VerifyRetailer(c.Request().Context(), input.ShopLicense, input.FSSAINumber)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Retailer verification completed")
}

// MarketPrices returns the mocked mandi price feed for a commodity.
func (h *ExternalHandler) MarketPrices(c echo.Context) error {
	commodity := c.QueryParam("commodity")
	if commodity == "" {
		commodity = "Mango"
	}

	prices, err := h.verification.MarketPrices(c.Request().Context(), commodity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"commodity": commodity,
		"prices":    prices,
	}, "Market prices retrieved")
}
