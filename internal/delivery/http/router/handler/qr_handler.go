package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"agritrace/internal/delivery/http/response"
	"agritrace/internal/domain/service"
	"agritrace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// QRHandler serves consumer verification QR codes.
type QRHandler struct {
	qrcodeSvc service.QRCodeService
	ledger    usecase.LedgerUsecase
	logger    *slog.Logger
}

// NewQRHandler is the constructor for QRHandler, injected by Fx.
func NewQRHandler(qrcodeSvc service.QRCodeService, ledger usecase.LedgerUsecase, logger *slog.Logger) *QRHandler {
	return &QRHandler{
		qrcodeSvc: qrcodeSvc,
		ledger:    ledger,
		logger:    logger,
	}
}

// Image renders the verification QR code as a PNG. Unknown products get a
// 404 instead of a code pointing nowhere.
func (h *QRHandler) Image(c echo.Context) error {
	productID := c.Param("id")
	if _, err := h.ledger.GetProductHistory(c.Request().Context(), productID); err != nil {
		return errors.WithStack(err)
	}

	png, err := h.qrcodeSvc.GenerateVerificationQR(productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// Data returns the QR code as a base64 data URL alongside the verification
// URL it encodes, for clients that embed the code in markup.
func (h *QRHandler) Data(c echo.Context) error {
	productID := c.Param("id")
	if _, err := h.ledger.GetProductHistory(c.Request().Context(), productID); err != nil {
		return errors.WithStack(err)
	}

	png, err := h.qrcodeSvc.GenerateVerificationQR(productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"productId":       productID,
		"qrCode":          "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		"verificationUrl": h.qrcodeSvc.VerificationURL(productID),
	}, "QR code generated")
}
