// Package usecase defines the application's business operations and their
// input/output contracts.
package usecase

import (
	"context"
	"time"

	"agritrace/internal/domain/entity"
)

// FarmerDetails identifies the registering farmer.
type FarmerDetails struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
	Contact  string `json:"contact"`
}

// ProductDetails carries the descriptive attributes of a new batch. They are
// immutable after registration.
type ProductDetails struct {
	ProductType    string   `json:"productType" validate:"required"`
	Variety        string   `json:"variety"`
	BatchSize      string   `json:"batchSize" validate:"required"`
	HarvestDate    string   `json:"harvestDate" validate:"required"`
	BasePrice      float64  `json:"basePrice"`
	Certifications []string `json:"certifications"`
}

// RegisterProductInput is the request body of product registration. When
// ProductID is empty the ledger assigns one.
type RegisterProductInput struct {
	ProductID      string          `json:"productId"`
	FarmerDetails  *FarmerDetails  `json:"farmerDetails" validate:"required"`
	ProductDetails *ProductDetails `json:"productDetails" validate:"required"`
}

// RegisterProductOutput reports the assigned product id.
type RegisterProductOutput struct {
	ProductID string `json:"productId"`
	Message   string `json:"message"`
}

// TransferOwnershipInput is the request body of a custody transfer.
type TransferOwnershipInput struct {
	NewOwnerRole     string `json:"newOwnerRole" validate:"required"`
	NewOwnerName     string `json:"newOwnerName" validate:"required"`
	NewOwnerLocation string `json:"newOwnerLocation" validate:"required"`
	HandlingInfo     string `json:"handlingInfo"`
	NotifyPhone      string `json:"notifyPhone"`
}

// VerifyOutput is the result of a consumer QR scan: the (possibly just
// sealed) product plus whether finalization succeeded.
type VerifyOutput struct {
	Product   *entity.Product `json:"product"`
	Finalized bool            `json:"finalized"`
}

// DashboardMetrics aggregates ledger totals for the analytics dashboard.
type DashboardMetrics struct {
	TotalProducts     int `json:"totalProducts"`
	ActiveProducts    int `json:"activeProducts"`
	CompletedProducts int `json:"completedProducts"`
	FinalizedProducts int `json:"finalizedProducts"`
	TotalTransactions int `json:"totalTransactions"`
	UniqueFarmers     int `json:"uniqueFarmers"`
}

// RecentTransaction is one history entry annotated with its product for the
// dashboard feed.
type RecentTransaction struct {
	entity.Transaction
	ProductID   string `json:"productId"`
	ProductType string `json:"productType"`
}

// DashboardOutput is the analytics dashboard payload.
type DashboardOutput struct {
	Metrics            *DashboardMetrics   `json:"metrics"`
	RecentTransactions []RecentTransaction `json:"recentTransactions"`
	Timestamp          time.Time           `json:"timestamp"`
}

// LedgerUsecase is the single source of truth for product existence,
// ownership history and lifecycle status. Mutating operations assume the
// boundary layer has already authenticated the caller and checked their
// role; the ledger trusts the identity strings it is handed.
type LedgerUsecase interface {
	// RegisterProduct creates an ACTIVE product whose history opens with
	// the farmer's registration event.
	RegisterProduct(ctx context.Context, input *RegisterProductInput) (*RegisterProductOutput, error)

	// TransferOwnership appends a custody-change transaction. Fails once
	// the product is finalized.
	TransferOwnership(ctx context.Context, productID string, input *TransferOwnershipInput) error

	// GetProductHistory returns the product with its full ordered history.
	GetProductHistory(ctx context.Context, productID string) (*entity.Product, error)

	// GetAllProducts returns every known product in insertion order.
	GetAllProducts(ctx context.Context) ([]*entity.Product, error)

	// CompleteProduct appends the consumer purchase transaction and marks
	// the product COMPLETED. It never finalizes. A non-empty consumerInfo
	// replaces the default handling note of the purchase entry.
	CompleteProduct(ctx context.Context, productID, consumerInfo string) (*entity.Product, error)

	// FinalizeProductChain seals the product: server-authored terminal
	// consumer transaction, FINALIZED status, permanent write lock.
	// Finalizing an already sealed product is a no-op returning the
	// product unchanged.
	FinalizeProductChain(ctx context.Context, productID string) (*entity.Product, error)

	// VerifyAndFinalize is the consumer QR-scan experience: fetch the
	// history and immediately seal the chain.
	VerifyAndFinalize(ctx context.Context, productID string) (*VerifyOutput, error)

	// DashboardAnalytics aggregates ledger metrics and the most recent
	// transactions across all products.
	DashboardAnalytics(ctx context.Context) (*DashboardOutput, error)
}
