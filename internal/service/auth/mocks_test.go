package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/sudokuhub/backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	CreateFunc        func(ctx context.Context, user *domain.User) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return m.CreateFunc(ctx, user)
}

var _ tokenRepo = &tokenRepoMock{}

type tokenRepoMock struct {
	CreateFunc          func(ctx context.Context, token *domain.RefreshToken) error
	GetByHashFunc       func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByIDFunc      func(ctx context.Context, id uuid.UUID) error
	RevokeAllByUserFunc func(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredFunc   func(ctx context.Context) (int, error)
}

func (m *tokenRepoMock) Create(ctx context.Context, token *domain.RefreshToken) error {
	return m.CreateFunc(ctx, token)
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return m.GetByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) RevokeByID(ctx context.Context, id uuid.UUID) error {
	return m.RevokeByIDFunc(ctx, id)
}

func (m *tokenRepoMock) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	return m.RevokeAllByUserFunc(ctx, userID)
}

func (m *tokenRepoMock) DeleteExpired(ctx context.Context) (int, error) {
	return m.DeleteExpiredFunc(ctx)
}

var _ jwtManager = &jwtManagerMock{}

type jwtManagerMock struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID) (string, error)
	ValidateAccessTokenFunc  func(token string) (uuid.UUID, error)
	GenerateRefreshTokenFunc func() (string, string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return m.GenerateAccessTokenFunc(userID)
}

func (m *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, error) {
	return m.ValidateAccessTokenFunc(token)
}

func (m *jwtManagerMock) GenerateRefreshToken() (string, string, error) {
	return m.GenerateRefreshTokenFunc()
}
