package memstore

import (
	"context"
	"testing"
	"time"

	"agritrace/internal/domain/entity"
	"agritrace/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(username, email string, role entity.Role) *entity.User {
	now := time.Now()

	return &entity.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$fakehash",
		Role:         role,
		Phone:        "+91-9876543210",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := newUser("farmer1", "farmer1@example.com", entity.RoleFarmer)
	require.NoError(t, repo.Create(ctx, user))

	byName, err := repo.FindByUsername(ctx, "farmer1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "farmer1", byID.Username)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("farmer1", "a@example.com", entity.RoleFarmer)))
	err := repo.Create(ctx, newUser("farmer1", "b@example.com", entity.RoleFarmer))
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("farmer1", "same@example.com", entity.RoleFarmer)))
	err := repo.Create(ctx, newUser("farmer2", "Same@Example.com", entity.RoleFarmer))
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("farmer1", "farmer1@example.com", entity.RoleFarmer)))

	updated, err := repo.Update(ctx, "farmer1", func(u *entity.User) error {
		u.Phone = "+91-9000000000"
		u.Email = "new@example.com"

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "+91-9000000000", updated.Phone)

	// The email index follows the update: the old address is free, the new
	// one is taken.
	require.NoError(t, repo.Create(ctx, newUser("farmer2", "farmer1@example.com", entity.RoleFarmer)))
	err = repo.Create(ctx, newUser("farmer3", "new@example.com", entity.RoleFarmer))
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestUserRepository_FindAll_InsertionOrder(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("admin", "admin@example.com", entity.RoleAdmin)))
	require.NoError(t, repo.Create(ctx, newUser("farmer1", "farmer1@example.com", entity.RoleFarmer)))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "admin", all[0].Username)
	assert.Equal(t, "farmer1", all[1].Username)
}
