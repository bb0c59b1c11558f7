package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/workzen/hrms-backend-go/internal/domain/auth"
	"github.com/workzen/hrms-backend-go/internal/domain/user"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
	"github.com/workzen/hrms-backend-go/internal/pkg/jwt"
	"github.com/workzen/hrms-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

// loginIDPrefix is the fixed organization prefix on generated login ids.
const loginIDPrefix = "OI"

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	postgresql.JWTRepository
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
		JWTRepository:  jwtRepository,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// generateLoginID builds the company login id: prefix, first two letters
// of the first and last name, joining year, then a four digit serial.
// "John Doe" joining in 2022 as the first hire becomes OIJODO20220001.
func (a *AuthServiceImpl) generateLoginID(ctx context.Context, fullName string, year int) (string, error) {
	parts := strings.Fields(strings.ToUpper(fullName))

	first := "XX"
	last := "XX"
	if len(parts) > 0 {
		first = initialsOf(parts[0])
	}
	if len(parts) > 1 {
		last = initialsOf(parts[len(parts)-1])
	} else if len(parts) == 1 {
		last = first
	}

	count, err := a.UserRepository.CountJoinedInYear(ctx, year)
	if err != nil {
		return "", fmt.Errorf("failed to count users for login id serial: %w", err)
	}

	serial := count + 1
	for {
		candidate := fmt.Sprintf("%s%s%s%d%04d", loginIDPrefix, first, last, year, serial)
		_, err := a.UserRepository.GetByLoginID(ctx, candidate)
		if errors.Is(err, user.ErrUserNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check login id availability: %w", err)
		}
		serial++
	}
}

func initialsOf(word string) string {
	letters := make([]rune, 0, 2)
	for _, r := range word {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
		}
		if len(letters) == 2 {
			break
		}
	}
	for len(letters) < 2 {
		letters = append(letters, 'X')
	}
	return string(letters)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	err = postgresql.RunInTx(ctx, a.db, func(txCtx context.Context) error {
		tokenResponse.AccessToken, tokenResponse.ExpiresAt, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}

		tokenResponse.RefreshToken, tokenResponse.RefreshExpiresAt, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshExpiresAt)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	tokenResponse.TokenType = "Bearer"
	tokenResponse.User = user.ToResponse(userData)
	return tokenResponse, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	exists, err := a.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, user.ErrUserEmailExists
	}

	hashedPassword, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.RoleEmployee
	if req.Role != nil {
		role = user.Role(*req.Role)
	}

	loginID, err := a.generateLoginID(ctx, req.FullName, time.Now().Year())
	if err != nil {
		return auth.TokenResponse{}, err
	}

	newUser := user.User{
		Email:        req.Email,
		LoginID:      &loginID,
		PasswordHash: &hashedPassword,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         role,
		CompanyName:  req.CompanyName,
		IsActive:     true,
	}
	newUser, err = a.UserRepository.Create(ctx, newUser)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return a.issueTokens(ctx, newUser)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return a.loginChecked(ctx, userData, req.Password)
}

// LoginWithLoginID implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithLoginID(ctx context.Context, req auth.LoginIDRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByLoginID(ctx, req.LoginID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by login id: %w", err)
	}

	return a.loginChecked(ctx, userData, req.Password)
}

func (a *AuthServiceImpl) loginChecked(ctx context.Context, userData user.User, password string) (auth.TokenResponse, error) {
	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrUserDeactivated
	}

	return a.issueTokens(ctx, userData)
}

// LoginWithGoogle implements auth.AuthService. Only already registered
// accounts may sign in with Google; there is no implicit signup.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, user.ErrGoogleAccountNotRegistered
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrUserDeactivated
	}

	return a.issueTokens(ctx, userData)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.AccessTokenResponse, error) {
	userID, err := a.Service.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	isRevoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrUserNotFound
	}
	if !userData.IsActive {
		return auth.AccessTokenResponse{}, auth.ErrUserDeactivated
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.ExpiresAt, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	resp.TokenType = "Bearer"

	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := a.JWTRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(userData), nil
}

// UpdateUser implements auth.AuthService. Only admins may change roles or
// deactivate accounts; users may edit their own profile fields.
func (a *AuthServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest, actorID string, actorRole user.Role) (user.UserResponse, error) {
	if actorRole != user.RoleAdmin {
		if req.ID != actorID {
			return user.UserResponse{}, user.ErrInsufficientPermissions
		}
		if req.Role != nil || req.IsActive != nil {
			return user.UserResponse{}, user.ErrAdminAccessRequired
		}
	}

	updated, err := a.UserRepository.Update(ctx, req)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated), nil
}

// DeleteUser implements auth.AuthService.
func (a *AuthServiceImpl) DeleteUser(ctx context.Context, id string, actorID string) error {
	if id == actorID {
		return user.ErrCannotDeleteOwnAccount
	}

	err := postgresql.RunInTx(ctx, a.db, func(txCtx context.Context) error {
		if err := a.JWTRepository.RevokeAllForUser(txCtx, id); err != nil {
			return fmt.Errorf("failed to revoke user sessions: %w", err)
		}
		return a.UserRepository.Delete(txCtx, id)
	})
	return err
}
