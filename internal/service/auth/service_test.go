package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	internalauth "github.com/sudokuhub/backend/internal/auth"
	"github.com/sudokuhub/backend/internal/config"
	"github.com/sudokuhub/backend/internal/domain"
	"github.com/sudokuhub/backend/pkg/ctxutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// defaultCfg returns a config suitable for most tests.
func defaultCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:        "0123456789abcdef0123456789abcdef",
		JWTIssuer:        "sudokuhub-test",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  30 * 24 * time.Hour,
		PasswordHashCost: bcrypt.MinCost, // fast tests
	}
}

// hashPassword returns a bcrypt hash for testing.
func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	return string(hash)
}

func staticJWT() *jwtManagerMock {
	return &jwtManagerMock{
		GenerateAccessTokenFunc: func(uuid.UUID) (string, error) {
			return "access_token", nil
		},
		GenerateRefreshTokenFunc: func() (string, string, error) {
			return "raw_refresh", "hash_refresh", nil
		},
	}
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	var created *domain.User
	users := &userRepoMock{
		CreateFunc: func(_ context.Context, u *domain.User) (*domain.User, error) {
			created = u
			return u, nil
		},
	}
	var storedToken *domain.RefreshToken
	tokens := &tokenRepoMock{
		CreateFunc: func(_ context.Context, tok *domain.RefreshToken) error {
			storedToken = tok
			return nil
		},
	}

	svc := NewService(testLogger(), users, tokens, staticJWT(), defaultCfg())

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Player@Example.COM ",
		Username: " player1 ",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: unexpected error: %v", err)
	}

	if created.Email != "player@example.com" {
		t.Errorf("email not normalized: got %q", created.Email)
	}
	if created.Username != "player1" {
		t.Errorf("username not trimmed: got %q", created.Username)
	}
	if created.PasswordHash == "correct-horse" || created.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct-horse")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	if result.AccessToken != "access_token" || result.RefreshToken != "raw_refresh" {
		t.Errorf("unexpected tokens: %+v", result)
	}
	if storedToken.TokenHash != "hash_refresh" {
		t.Errorf("stored token hash: got %q, want hash_refresh", storedToken.TokenHash)
	}
	if storedToken.UserID != created.ID {
		t.Error("refresh token must belong to the created user")
	}
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		CreateFunc: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrAlreadyExists
		},
	}

	svc := NewService(testLogger(), users, &tokenRepoMock{}, staticJWT(), defaultCfg())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "player@example.com",
		Username: "taken",
		Password: "correct-horse",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("Register: err = %v, want ErrAlreadyExists", err)
	}
}

func TestService_Register_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &userRepoMock{}, &tokenRepoMock{}, staticJWT(), defaultCfg())

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"empty", RegisterInput{}},
		{"bad email", RegisterInput{Email: "not-an-email", Username: "player1", Password: "correct-horse"}},
		{"short username", RegisterInput{Email: "p@example.com", Username: "ab", Password: "correct-horse"}},
		{"bad username chars", RegisterInput{Email: "p@example.com", Username: "pl ayer", Password: "correct-horse"}},
		{"short password", RegisterInput{Email: "p@example.com", Username: "player1", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Register(%+v): err = %v, want ErrValidation", tt.input, err)
			}
		})
	}
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	hash := hashPassword(t, "correct-horse")
	users := &userRepoMock{
		GetByUsernameFunc: func(_ context.Context, username string) (*domain.User, error) {
			if username != "player1" {
				t.Errorf("GetByUsername called with %q", username)
			}
			return &domain.User{ID: userID, Username: "player1", PasswordHash: hash}, nil
		},
	}
	tokens := &tokenRepoMock{
		CreateFunc: func(context.Context, *domain.RefreshToken) error { return nil },
	}

	svc := NewService(testLogger(), users, tokens, staticJWT(), defaultCfg())

	result, err := svc.Login(context.Background(), LoginInput{Username: "player1", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login: unexpected error: %v", err)
	}
	if result.User.ID != userID {
		t.Errorf("Login user: got %s, want %s", result.User.ID, userID)
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	hash := hashPassword(t, "correct-horse")
	users := &userRepoMock{
		GetByUsernameFunc: func(context.Context, string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Username: "player1", PasswordHash: hash}, nil
		},
	}

	svc := NewService(testLogger(), users, &tokenRepoMock{}, staticJWT(), defaultCfg())

	_, err := svc.Login(context.Background(), LoginInput{Username: "player1", Password: "wrong"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Login: err = %v, want ErrUnauthorized", err)
	}
}

func TestService_Login_UnknownUser(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByUsernameFunc: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := NewService(testLogger(), users, &tokenRepoMock{}, staticJWT(), defaultCfg())

	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Login: err = %v, want ErrUnauthorized (not ErrNotFound)", err)
	}
}

func TestService_Refresh_RotatesToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	tokenID := uuid.New()
	raw := "raw_token_value"
	hash := internalauth.HashToken(raw)

	var revoked uuid.UUID
	tokens := &tokenRepoMock{
		GetByHashFunc: func(_ context.Context, h string) (*domain.RefreshToken, error) {
			if h != hash {
				t.Errorf("GetByHash called with %q, want %q", h, hash)
			}
			return &domain.RefreshToken{ID: tokenID, UserID: userID, TokenHash: h}, nil
		},
		RevokeByIDFunc: func(_ context.Context, id uuid.UUID) error {
			revoked = id
			return nil
		},
		CreateFunc: func(context.Context, *domain.RefreshToken) error { return nil },
	}
	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Username: "player1"}, nil
		},
	}

	svc := NewService(testLogger(), users, tokens, staticJWT(), defaultCfg())

	result, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: raw})
	if err != nil {
		t.Fatalf("Refresh: unexpected error: %v", err)
	}
	if revoked != tokenID {
		t.Errorf("old token not revoked: revoked=%s, want %s", revoked, tokenID)
	}
	if result.RefreshToken != "raw_refresh" {
		t.Errorf("new refresh token: got %q", result.RefreshToken)
	}
}

func TestService_Refresh_UnknownToken(t *testing.T) {
	t.Parallel()

	tokens := &tokenRepoMock{
		GetByHashFunc: func(context.Context, string) (*domain.RefreshToken, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := NewService(testLogger(), &userRepoMock{}, tokens, staticJWT(), defaultCfg())

	_, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: "stale"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Refresh: err = %v, want ErrUnauthorized", err)
	}
}

func TestService_Logout(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var revokedUser uuid.UUID
	tokens := &tokenRepoMock{
		RevokeAllByUserFunc: func(_ context.Context, id uuid.UUID) error {
			revokedUser = id
			return nil
		},
	}

	svc := NewService(testLogger(), &userRepoMock{}, tokens, staticJWT(), defaultCfg())

	ctx := ctxutil.WithUserID(context.Background(), userID)
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: unexpected error: %v", err)
	}
	if revokedUser != userID {
		t.Errorf("RevokeAllByUser: got %s, want %s", revokedUser, userID)
	}
}

func TestService_Logout_Anonymous(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &userRepoMock{}, &tokenRepoMock{}, staticJWT(), defaultCfg())

	if err := svc.Logout(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Logout: err = %v, want ErrUnauthorized", err)
	}
}

func TestService_CleanupExpiredTokens(t *testing.T) {
	t.Parallel()

	tokens := &tokenRepoMock{
		DeleteExpiredFunc: func(context.Context) (int, error) { return 7, nil },
	}

	svc := NewService(testLogger(), &userRepoMock{}, tokens, staticJWT(), defaultCfg())

	count, err := svc.CleanupExpiredTokens(context.Background())
	if err != nil {
		t.Fatalf("CleanupExpiredTokens: unexpected error: %v", err)
	}
	if count != 7 {
		t.Errorf("count: got %d, want 7", count)
	}
}
