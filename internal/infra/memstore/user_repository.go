package memstore

import (
	"context"
	"strings"
	"sync"

	"agritrace/internal/domain/entity"
	"agritrace/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	mu     sync.RWMutex
	users  map[string]*entity.User // keyed by username
	emails map[string]string       // lowercased email -> username
	order  []string
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		users:  make(map[string]*entity.User),
		emails: make(map[string]string),
	}
}

// Create stores a deep copy of the user, enforcing username and email
// uniqueness.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return repository.ErrUsernameTaken
	}

	emailKey := strings.ToLower(user.Email)
	if _, exists := r.emails[emailKey]; exists {
		return repository.ErrEmailTaken
	}

	r.users[user.Username] = user.Clone()
	r.emails[emailKey] = user.Username
	r.order = append(r.order, user.Username)

	return nil
}

// FindByUsername returns a deep copy of the stored user.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[username]
	if !exists {
		return nil, repository.ErrUserNotFound
	}

	return user.Clone(), nil
}

// FindByID returns a deep copy of the stored user.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			return user.Clone(), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// FindAll returns deep copies of all users in insertion order.
func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entity.User, 0, len(r.order))
	for _, username := range r.order {
		users = append(users, r.users[username].Clone())
	}

	return users, nil
}

// Update applies mutate under the store's write lock. The mutation runs on a
// working copy and only replaces the stored user when it succeeds. Username
// changes are not supported; the email index follows email updates.
func (r *userRepository) Update(ctx context.Context, username string, mutate func(*entity.User) error) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.users[username]
	if !exists {
		return nil, repository.ErrUserNotFound
	}

	working := stored.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	working.Username = stored.Username

	oldEmail := strings.ToLower(stored.Email)
	newEmail := strings.ToLower(working.Email)
	if oldEmail != newEmail {
		if taken, exists := r.emails[newEmail]; exists && taken != username {
			return nil, repository.ErrEmailTaken
		}
		delete(r.emails, oldEmail)
		r.emails[newEmail] = username
	}

	r.users[username] = working

	return working.Clone(), nil
}
