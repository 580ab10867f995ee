package repositories

import (
	"context"
	"securix/models"
	"securix/utils"
	"sync"
	"time"
)

// UserRepository holds user records in memory. Records are never deleted;
// logout only clears the session slot held by the auth service.
type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string // email -> id
	byPhone map[string]string // phone -> id
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
		byPhone: make(map[string]string),
	}
}

func (ur *UserRepository) Create(_ context.Context, user *models.User) error {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	if user.ID == "" {
		user.ID = utils.GenerateUUID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, exists := ur.byEmail[user.Email]; exists {
		return utils.NewConflictError("User with this email already exists")
	}
	if _, exists := ur.byPhone[user.Phone]; exists {
		return utils.NewConflictError("User with this phone number already exists")
	}

	clone := *user
	ur.users[user.ID] = &clone
	ur.byEmail[user.Email] = user.ID
	ur.byPhone[user.Phone] = user.ID
	return nil
}

func (ur *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, utils.NewUserNotFoundError()
	}
	clone := *user
	return &clone, nil
}

func (ur *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	id, ok := ur.byEmail[email]
	if !ok {
		return nil, utils.NewUserNotFoundError()
	}
	clone := *ur.users[id]
	return &clone, nil
}

func (ur *UserRepository) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	id, ok := ur.byPhone[phone]
	if !ok {
		return nil, utils.NewUserNotFoundError()
	}
	clone := *ur.users[id]
	return &clone, nil
}

func (ur *UserRepository) Update(_ context.Context, user *models.User) error {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	current, ok := ur.users[user.ID]
	if !ok {
		return utils.NewUserNotFoundError()
	}

	if current.Email != user.Email {
		delete(ur.byEmail, current.Email)
		ur.byEmail[user.Email] = user.ID
	}
	if current.Phone != user.Phone {
		delete(ur.byPhone, current.Phone)
		ur.byPhone[user.Phone] = user.ID
	}

	user.UpdatedAt = time.Now()
	clone := *user
	ur.users[user.ID] = &clone
	return nil
}
