package memstore

import (
	"context"
	"log/slog"
	"time"

	"agritrace/internal/domain/entity"
	"agritrace/internal/domain/repository"
	"agritrace/internal/domain/service"
	"agritrace/internal/errors"

	"github.com/google/uuid"
)

type demoUser struct {
	username string
	email    string
	password string
	role     entity.Role
	phone    string
}

var demoUsers = []demoUser{
	{"admin", "admin@agritrace.gov.in", "admin123", entity.RoleAdmin, "+91-9999999999"},
	{"farmer1", "farmer1@example.com", "demo123", entity.RoleFarmer, "+91-9876543210"},
	{"distributor1", "distributor1@example.com", "demo123", entity.RoleDistributor, "+91-9876543211"},
	{"retailer1", "retailer1@example.com", "demo123", entity.RoleRetailer, "+91-9876543212"},
	{"consumer1", "consumer1@example.com", "demo123", entity.RoleConsumer, "+91-9876543213"},
}

// SeedDemoUsers loads the demo accounts (one per role plus admin) into the
// user store. Passwords are hashed at seed time so the stored records look
// exactly like registered ones.
func SeedDemoUsers(ctx context.Context, repo repository.UserRepository, hasher service.PasswordHasher, logger *slog.Logger) error {
	now := time.Now()
	for _, demo := range demoUsers {
		hash, err := hasher.Hash(demo.password)
		if err != nil {
			return errors.Wrapf(err, "failed to hash demo password for %s", demo.username)
		}

		user := &entity.User{
			ID:           uuid.New(),
			Username:     demo.username,
			Email:        demo.email,
			PasswordHash: hash,
			Role:         demo.role,
			Phone:        demo.phone,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := repo.Create(ctx, user); err != nil {
			return errors.Wrapf(err, "failed to seed user %s", demo.username)
		}
	}

	logger.Info("Seeded demo users", slog.Int("count", len(demoUsers)))

	return nil
}

// SeedDemoProducts loads two example batches so a fresh instance has
// something to show before the first farmer registers anything.
func SeedDemoProducts(ctx context.Context, repo repository.ProductRepository, logger *slog.Logger) error {
	now := time.Now()
	products := []*entity.Product{
		{
			ProductID:   "P1725782400000-abc123def",
			ProductType: "Organic Mango",
			Variety:     "Alphonso",
			BatchSize:   "100 kg",
			HarvestDate: "2025-09-01",
			BasePrice:   120,
			Status:      entity.StatusActive,
			Transactions: []entity.Transaction{
				{
					TransactionID: "TXN-1725782400000-seed01",
					Role:          entity.TransactionRoleFarmer,
					Name:          "Ravi Kumar",
					Location:      "Nashik, MH",
					Timestamp:     now,
					HandlingInfo:  "Product registered - Organic Mango",
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ProductID:   "P1725782400001-def456ghi",
			ProductType: "Fresh Tomatoes",
			Variety:     "Standard",
			BatchSize:   "50 kg",
			HarvestDate: "2025-09-02",
			BasePrice:   40,
			Status:      entity.StatusActive,
			Transactions: []entity.Transaction{
				{
					TransactionID: "TXN-1725782400001-seed02",
					Role:          entity.TransactionRoleFarmer,
					Name:          "Priya Sharma",
					Location:      "Punjab, India",
					Timestamp:     now,
					HandlingInfo:  "Product registered - Fresh Tomatoes",
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, product := range products {
		if err := repo.Create(ctx, product); err != nil {
			return errors.Wrapf(err, "failed to seed product %s", product.ProductID)
		}
	}

	logger.Info("Seeded demo products", slog.Int("count", len(products)))

	return nil
}
