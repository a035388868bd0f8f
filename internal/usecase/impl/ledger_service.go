// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	deliverycontext "agritrace/internal/delivery/context"
	"agritrace/internal/domain/entity"
	domainerrors "agritrace/internal/domain/errors"
	"agritrace/internal/domain/repository"
	"agritrace/internal/domain/service"
	"agritrace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	finalizedByConsumerScan = "Consumer QR Scan"
	recentTransactionLimit  = 10
)

// ledgerService implements the LedgerUsecase interface on top of the
// product repository.
type ledgerService struct {
	productRepo repository.ProductRepository
	notifier    service.NotificationService
	logger      *slog.Logger
}

// LedgerServiceParams holds dependencies for LedgerService, injected by Fx.
type LedgerServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Notifier    service.NotificationService
	Logger      *slog.Logger
}

// NewLedgerService is the constructor for ledgerService.
func NewLedgerService(params LedgerServiceParams) usecase.LedgerUsecase {
	return &ledgerService{
		productRepo: params.ProductRepo,
		notifier:    params.Notifier,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *ledgerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterProduct creates a new product whose history opens with the
// farmer's registration transaction.
func (srv *ledgerService) RegisterProduct(ctx context.Context, input *usecase.RegisterProductInput) (*usecase.RegisterProductOutput, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	now := time.Now()
	productID := input.ProductID
	if productID == "" {
		productID = newProductID(now)
	}

	details := input.ProductDetails
	farmer := input.FarmerDetails

	product := &entity.Product{
		ProductID:      productID,
		ProductType:    details.ProductType,
		Variety:        details.Variety,
		BatchSize:      details.BatchSize,
		HarvestDate:    details.HarvestDate,
		BasePrice:      details.BasePrice,
		Certifications: append([]string(nil), details.Certifications...),
		Status:         entity.StatusActive,
		Transactions: []entity.Transaction{
			{
				TransactionID: newTransactionID(now),
				Role:          entity.TransactionRoleFarmer,
				Name:          farmer.Name,
				Location:      farmer.Location,
				Timestamp:     now,
				HandlingInfo:  "Product registered - " + details.ProductType,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateProduct) {
			return nil, domainerrors.ErrDuplicateProduct
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to register product")
	}

	srv.log(ctx).Info("Product registered",
		slog.String("product_id", productID),
		slog.String("product_type", details.ProductType),
		slog.String("farmer", farmer.Name))

	if farmer.Contact != "" {
		message := fmt.Sprintf("Your product %s (%s) has been registered on the traceability ledger. ID: %s",
			details.ProductType, details.BatchSize, productID)
		srv.notifyAsync(farmer.Contact, message)
	}

	return &usecase.RegisterProductOutput{
		ProductID: productID,
		Message:   "Product registered successfully",
	}, nil
}

// TransferOwnership appends a custody-change transaction to the product's
// history. A finalized product rejects the transfer.
func (srv *ledgerService) TransferOwnership(ctx context.Context, productID string, input *usecase.TransferOwnershipInput) error {
	if input.NewOwnerRole == "" || input.NewOwnerName == "" || input.NewOwnerLocation == "" {
		return domainerrors.ErrValidationFailed.WithDetails(
			"newOwnerRole, newOwnerName and newOwnerLocation are required")
	}

	handlingInfo := input.HandlingInfo
	if handlingInfo == "" {
		handlingInfo = "Ownership transferred to " + input.NewOwnerRole
	}

	_, err := srv.productRepo.Update(ctx, productID, func(product *entity.Product) error {
		if product.Finalized {
			return domainerrors.ErrProductFinalized
		}

		now := time.Now()
		product.Transactions = append(product.Transactions, entity.Transaction{
			TransactionID: newTransactionID(now),
			Role:          input.NewOwnerRole,
			Name:          input.NewOwnerName,
			Location:      input.NewOwnerLocation,
			Timestamp:     now,
			HandlingInfo:  handlingInfo,
		})
		product.UpdatedAt = now

		return nil
	})
	if err != nil {
		return mapProductError(err)
	}

	srv.log(ctx).Info("Ownership transferred",
		slog.String("product_id", productID),
		slog.String("new_owner_role", input.NewOwnerRole),
		slog.String("new_owner", input.NewOwnerName))

	if input.NotifyPhone != "" {
		message := fmt.Sprintf("Product %s custody transferred to %s (%s).",
			productID, input.NewOwnerName, input.NewOwnerRole)
		srv.notifyAsync(input.NotifyPhone, message)
	}

	return nil
}

// GetProductHistory returns the product with its full transaction history.
func (srv *ledgerService) GetProductHistory(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapProductError(err)
	}

	return product, nil
}

// GetAllProducts returns every registered product in insertion order.
func (srv *ledgerService) GetAllProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindAll(ctx)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to list products")
	}

	return products, nil
}

// CompleteProduct records the consumer purchase and marks the product
// COMPLETED without sealing it. The optional consumerInfo becomes the
// handling note of the purchase entry.
func (srv *ledgerService) CompleteProduct(ctx context.Context, productID, consumerInfo string) (*entity.Product, error) {
	if consumerInfo == "" {
		consumerInfo = "Product purchased by consumer"
	}

	product, err := srv.productRepo.Update(ctx, productID, func(product *entity.Product) error {
		if product.Finalized {
			return domainerrors.ErrProductFinalized
		}

		now := time.Now()
		product.Transactions = append(product.Transactions, entity.Transaction{
			TransactionID: newTransactionID(now),
			Role:          entity.TransactionRoleConsumer,
			Name:          "Final Consumer",
			Location:      "End User",
			Timestamp:     now,
			HandlingInfo:  consumerInfo,
		})
		product.Status = entity.StatusCompleted
		product.UpdatedAt = now

		return nil
	})
	if err != nil {
		return nil, mapProductError(err)
	}

	srv.log(ctx).Info("Product completed", slog.String("product_id", productID))

	return product, nil
}

// FinalizeProductChain seals the product permanently. The terminal entry is
// entirely server-authored. Re-finalizing an already sealed product returns
// it unchanged.
func (srv *ledgerService) FinalizeProductChain(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := srv.productRepo.Update(ctx, productID, func(product *entity.Product) error {
		if product.Finalized {
			return nil
		}

		now := time.Now()
		product.Transactions = append(product.Transactions, entity.Transaction{
			TransactionID:    newTransactionID(now),
			Role:             entity.TransactionRoleConsumer,
			Name:             "QR Scanner",
			Location:         "End Consumer",
			Timestamp:        now,
			HandlingInfo:     "Blockchain finalized - QR code scanned by consumer",
			FinalTransaction: true,
		})
		product.Status = entity.StatusFinalized
		product.Finalized = true
		product.FinalizedAt = &now
		product.FinalizedBy = finalizedByConsumerScan
		product.UpdatedAt = now

		return nil
	})
	if err != nil {
		return nil, mapProductError(err)
	}

	srv.log(ctx).Info("Product chain finalized", slog.String("product_id", productID))

	return product, nil
}

// VerifyAndFinalize is the consumer QR-scan flow: the full history is
// returned and the chain is sealed in the same call.
func (srv *ledgerService) VerifyAndFinalize(ctx context.Context, productID string) (*usecase.VerifyOutput, error) {
	product, err := srv.FinalizeProductChain(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &usecase.VerifyOutput{
		Product:   product,
		Finalized: product.Finalized,
	}, nil
}

// DashboardAnalytics aggregates ledger-wide metrics and the most recent
// transactions across all products.
func (srv *ledgerService) DashboardAnalytics(ctx context.Context) (*usecase.DashboardOutput, error) {
	products, err := srv.productRepo.FindAll(ctx)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to load ledger for analytics")
	}

	metrics := &usecase.DashboardMetrics{TotalProducts: len(products)}
	farmers := make(map[string]struct{})

	var recent []usecase.RecentTransaction
	for _, product := range products {
		switch product.Status {
		case entity.StatusActive:
			metrics.ActiveProducts++
		case entity.StatusCompleted:
			metrics.CompletedProducts++
		case entity.StatusFinalized:
			metrics.FinalizedProducts++
		}

		metrics.TotalTransactions += len(product.Transactions)
		if len(product.Transactions) > 0 {
			origin := product.Transactions[0]
			farmers[strings.ToLower(origin.Name)] = struct{}{}
		}

		for _, txn := range product.Transactions {
			recent = append(recent, usecase.RecentTransaction{
				Transaction: txn,
				ProductID:   product.ProductID,
				ProductType: product.ProductType,
			})
		}
	}
	metrics.UniqueFarmers = len(farmers)

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}

	return &usecase.DashboardOutput{
		Metrics:            metrics,
		RecentTransactions: recent,
		Timestamp:          time.Now(),
	}, nil
}

// notifyAsync fires an SMS without blocking the request path. Delivery
// failures are logged and otherwise ignored.
func (srv *ledgerService) notifyAsync(phone, message string) {
	if srv.notifier == nil {
		return
	}

	go func() {
		if _, err := srv.notifier.Send(context.Background(), phone, message); err != nil {
			srv.logger.Warn("SMS notification failed", slog.String("error", err.Error()))
		}
	}()
}

func validateRegistration(input *usecase.RegisterProductInput) error {
	if input.FarmerDetails == nil || input.ProductDetails == nil {
		return domainerrors.ErrValidationFailed.WithDetails("farmerDetails and productDetails are required")
	}

	var missing []string
	if input.FarmerDetails.Name == "" {
		missing = append(missing, "farmerDetails.name")
	}
	if input.FarmerDetails.Location == "" {
		missing = append(missing, "farmerDetails.location")
	}
	if input.ProductDetails.ProductType == "" {
		missing = append(missing, "productDetails.productType")
	}
	if input.ProductDetails.BatchSize == "" {
		missing = append(missing, "productDetails.batchSize")
	}
	if input.ProductDetails.HarvestDate == "" {
		missing = append(missing, "productDetails.harvestDate")
	}
	if len(missing) > 0 {
		return domainerrors.ErrValidationFailed.WithDetails("missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

// mapProductError converts repository sentinels into domain errors carrying
// HTTP semantics. Domain errors raised inside mutate callbacks pass through.
func mapProductError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return domainerrors.ErrProductNotFound
	case errors.Is(err, repository.ErrDuplicateProduct):
		return domainerrors.ErrDuplicateProduct
	default:
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return err
		}

		return domainerrors.ErrInternalError.WrapMessage("ledger operation failed")
	}
}

// newProductID builds a ledger-unique product id from the registration
// instant plus a random suffix.
func newProductID(now time.Time) string {
	return fmt.Sprintf("P%d-%s", now.UnixMilli(), randomSuffix(9))
}

// newTransactionID builds a transaction id. The random suffix keeps ids
// unique even when two entries share a millisecond.
func newTransactionID(now time.Time) string {
	return fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), randomSuffix(9))
}

func randomSuffix(n int) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	if n > len(id) {
		n = len(id)
	}

	return id[:n]
}
