// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"agritrace/internal/delivery/http/response"
	"agritrace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for product ledger handlers.
type ProductHandler struct {
	ledger usecase.LedgerUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(ledger usecase.LedgerUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		ledger: ledger,
		logger: logger,
	}
}

// Register handles product registration by a farmer.
func (h *ProductHandler) Register(c echo.Context) error {
	var input *usecase.RegisterProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product registration input")
	}

	output, err := h.ledger.RegisterProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Product registered successfully")
}

// Transfer handles a custody transfer to the next supply chain actor.
func (h *ProductHandler) Transfer(c echo.Context) error {
	var input *usecase.TransferOwnershipInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transfer input")
	}

	productID := c.Param("id")
	if err := h.ledger.TransferOwnership(c.Request().Context(), productID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"productId": productID},
		"Ownership transferred successfully")
}

// History returns the product with its full transaction history.
func (h *ProductHandler) History(c echo.Context) error {
	product, err := h.ledger.GetProductHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product history retrieved")
}

// List returns all registered products.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.ledger.GetAllProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"count":    len(products),
		"products": products,
	}, "Products retrieved")
}

type completeInput struct {
	ConsumerInfo string `json:"consumerInfo"`
}

// Complete records the consumer purchase and marks the product COMPLETED.
func (h *ProductHandler) Complete(c echo.Context) error {
	var input completeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid completion input")
	}

	product, err := h.ledger.CompleteProduct(c.Request().Context(), c.Param("id"), input.ConsumerInfo)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product marked as completed")
}

// Finalize permanently seals the product's chain. The terminal entry is
// server-authored; any request body is ignored.
func (h *ProductHandler) Finalize(c echo.Context) error {
	product, err := h.ledger.FinalizeProductChain(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product chain finalized")
}

// QRVerify is the consumer scan endpoint: it returns the product history and
// permanently seals the chain in the same request.
func (h *ProductHandler) QRVerify(c echo.Context) error {
	result, err := h.ledger.VerifyAndFinalize(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Product verified and blockchain finalized")
}

// Dashboard returns ledger-wide analytics.
func (h *ProductHandler) Dashboard(c echo.Context) error {
	analytics, err := h.ledger.DashboardAnalytics(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, analytics, "Dashboard analytics retrieved")
}
