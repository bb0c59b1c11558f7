package auth

import (
	"context"

	"github.com/workzen/hrms-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	LoginWithLoginID(ctx context.Context, req LoginIDRequest) (TokenResponse, error)
	LoginWithGoogle(ctx context.Context, email string) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID string) (user.UserResponse, error)
	UpdateUser(ctx context.Context, req user.UpdateUserRequest, actorID string, actorRole user.Role) (user.UserResponse, error)
	DeleteUser(ctx context.Context, id string, actorID string) error
}
