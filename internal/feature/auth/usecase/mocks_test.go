package usecase

import (
	"context"
	"time"

	"habit_backend/internal/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc    func(ctx context.Context, id string) (*entity.User, error)
	UpdateFunc      func(ctx context.Context, id string, patch entity.UserPatch) error
	DeleteFunc      func(ctx context.Context, id string) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = "generated-id"
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default: return user not found error
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, id string, patch entity.UserPatch) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// fakeHasher treats "hashed:"+plain as the digest of plain and records every Verify call.
type fakeHasher struct {
	HashErr       error
	VerifyDigests []string
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return "hashed:" + plain, nil
}

func (h *fakeHasher) Verify(plain, digest string) bool {
	h.VerifyDigests = append(h.VerifyDigests, digest)
	return digest == "hashed:"+plain
}

// mockTokenIssuer is a mock implementation of the TokenIssuer interface.
type mockTokenIssuer struct {
	GenerateTokenFunc func(userID, email, username string) (string, error)
}

func (m *mockTokenIssuer) GenerateToken(userID, email, username string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email, username)
	}
	// Default: return a dummy token
	return "mock-jwt-token", nil
}

// mockTokenRevoker is a mock implementation of the TokenRevoker interface.
type mockTokenRevoker struct {
	RevokeFunc func(ctx context.Context, tokenID string, expiresAt time.Time) error
}

func (m *mockTokenRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenID, expiresAt)
	}
	return nil
}
