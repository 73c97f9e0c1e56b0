package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/model"
)

// userMemoryRepository is an in-memory UserRepository used in tests and local
// development. It mirrors the Mongo implementation's error contract:
// mongo.ErrNoDocuments for missing users and a duplicate-key server error for
// email collisions.
type userMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

// NewUserMemoryRepository creates an empty in-memory user repository.
func NewUserMemoryRepository() UserRepository {
	return &userMemoryRepository{users: make(map[string]*model.User)}
}

func (r *userMemoryRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return nil, mongo.CommandError{Code: 11000, Message: "duplicate key error"}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.Email] = &stored

	return user, nil
}

func (r *userMemoryRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	user := *stored
	return &user, nil
}

func (r *userMemoryRepository) UpdateUserByEmail(
	ctx context.Context,
	email string,
	params UpdateUserParams,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.PasswordHash != nil {
		stored.PasswordHash = *params.PasswordHash
	}
	if params.Verified != nil {
		stored.Verified = *params.Verified
	}
	if params.VerificationCode != nil {
		stored.VerificationCode = *params.VerificationCode
	}
	if params.VerificationCodeExpiresAt != nil {
		stored.VerificationCodeExpiresAt = *params.VerificationCodeExpiresAt
	}
	if params.ResetCode != nil {
		stored.ResetCode = *params.ResetCode
	}
	if params.ResetCodeExpiresAt != nil {
		stored.ResetCodeExpiresAt = *params.ResetCodeExpiresAt
	}
	if params.ClearVerificationCode {
		stored.VerificationCode = ""
		stored.VerificationCodeExpiresAt = time.Time{}
	}
	if params.ClearResetCode {
		stored.ResetCode = ""
		stored.ResetCodeExpiresAt = time.Time{}
	}
	stored.UpdatedAt = time.Now()

	user := *stored
	return &user, nil
}

func (r *userMemoryRepository) ListUsers(ctx context.Context, params FilterUsersParams) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*model.User
	for _, stored := range r.users {
		if params.Verified != nil && stored.Verified != *params.Verified {
			continue
		}

		user := *stored
		// Same projection as the Mongo implementation: secrets stay behind.
		user.PasswordHash = ""
		user.VerificationCode = ""
		user.VerificationCodeExpiresAt = time.Time{}
		user.ResetCode = ""
		user.ResetCodeExpiresAt = time.Time{}
		users = append(users, &user)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	if params.Offset > 0 {
		if params.Offset >= uint64(len(users)) {
			return nil, nil
		}
		users = users[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < uint64(len(users)) {
		users = users[:params.Limit]
	}

	return users, nil
}
