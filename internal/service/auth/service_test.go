package auth

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workzen/hrms-backend-go/internal/domain/auth"
	"github.com/workzen/hrms-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users   map[string]user.User
	byEmail map[string]string
	byLogin map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   map[string]user.User{},
		byEmail: map[string]string{},
		byLogin: map[string]string{},
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	newUser.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	newUser.CreatedAt = time.Now().UTC()
	f.users[newUser.ID] = newUser
	f.byEmail[newUser.Email] = newUser.ID
	if newUser.LoginID != nil {
		f.byLogin[*newUser.LoginID] = newUser.ID
	}
	return newUser, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByLoginID(ctx context.Context, loginID string) (user.User, error) {
	id, ok := f.byLogin[loginID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	u, ok := f.users[req.ID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	delete(f.byEmail, u.Email)
	if u.LoginID != nil {
		delete(f.byLogin, *u.LoginID)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CountJoinedInYear(ctx context.Context, year int) (int, error) {
	count := 0
	for _, u := range f.users {
		if u.CreatedAt.Year() == year {
			count++
		}
	}
	return count, nil
}

type fakeJWTService struct{}

func (fakeJWTService) GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (string, int64, error) {
	return "access-" + userID, time.Now().Add(15 * time.Minute).Unix(), nil
}

func (fakeJWTService) GenerateRefreshToken(userID string) (string, int64, error) {
	return "refresh-" + userID, time.Now().Add(7 * 24 * time.Hour).Unix(), nil
}

func (fakeJWTService) ValidateRefreshToken(tokenString string) (string, error) {
	if len(tokenString) > len("refresh-") && tokenString[:len("refresh-")] == "refresh-" {
		return tokenString[len("refresh-"):], nil
	}
	return "", auth.ErrInvalidToken
}

func (fakeJWTService) JWTAuth() *jwtauth.JWTAuth { return nil }

func (fakeJWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{Name: "refresh_token", Value: token}
}

type fakeJWTRepo struct {
	revoked map[string]bool
	stored  map[string]string
}

func (f *fakeJWTRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	f.stored[token] = userID
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeJWTRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	for token, owner := range f.stored {
		if owner == userID {
			f.revoked[token] = true
		}
	}
	return nil
}

func newTestService() (*AuthServiceImpl, *fakeUserRepo, *fakeJWTRepo) {
	userRepo := newFakeUserRepo()
	jwtRepo := &fakeJWTRepo{revoked: map[string]bool{}, stored: map[string]string{}}
	svc := &AuthServiceImpl{
		UserRepository: userRepo,
		Service:        fakeJWTService{},
		JWTRepository:  jwtRepo,
	}
	return svc, userRepo, jwtRepo
}

func TestGenerateLoginID_FirstHireOfYear(t *testing.T) {
	svc, _, _ := newTestService()

	loginID, err := svc.generateLoginID(context.Background(), "John Doe", 2022)
	require.NoError(t, err)
	assert.Equal(t, "OIJODO20220001", loginID)
}

func TestGenerateLoginID_SerialAdvancesWithHires(t *testing.T) {
	svc, userRepo, _ := newTestService()

	for i := 0; i < 3; i++ {
		_, err := userRepo.Create(context.Background(), user.User{
			Email: fmt.Sprintf("hire%d@example.com", i),
		})
		require.NoError(t, err)
	}

	loginID, err := svc.generateLoginID(context.Background(), "Jane Smith", time.Now().Year())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("OIJASM%d0004", time.Now().Year()), loginID)
}

func TestGenerateLoginID_SkipsTakenSerial(t *testing.T) {
	svc, userRepo, _ := newTestService()

	taken := "OIJODO20220001"
	userRepo.byLogin[taken] = "someone"
	userRepo.users["someone"] = user.User{ID: "someone", LoginID: &taken}

	loginID, err := svc.generateLoginID(context.Background(), "John Doe", 2022)
	require.NoError(t, err)
	assert.Equal(t, "OIJODO20220002", loginID)
}

func TestGenerateLoginID_SingleNamePadsInitials(t *testing.T) {
	svc, _, _ := newTestService()

	loginID, err := svc.generateLoginID(context.Background(), "Cher", 2023)
	require.NoError(t, err)
	assert.Equal(t, "OICHCH20230001", loginID)

	loginID, err = svc.generateLoginID(context.Background(), "J Lo", 2023)
	require.NoError(t, err)
	assert.Equal(t, "OIJXLO20230001", loginID)
}

func TestRegister_AssignsLoginIDAndTokens(t *testing.T) {
	svc, userRepo, jwtRepo := newTestService()

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "john.doe@example.com",
		Password: "s3cret-pass",
		FullName: "John Doe",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User.LoginID)
	assert.Contains(t, *resp.User.LoginID, "OIJODO")
	assert.Equal(t, string(user.RoleEmployee), resp.User.Role)

	created, err := userRepo.GetByEmail(context.Background(), "john.doe@example.com")
	require.NoError(t, err)
	require.NotNil(t, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("s3cret-pass")))
	assert.Equal(t, created.ID, jwtRepo.stored[resp.RefreshToken])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "john.doe@example.com",
		Password: "s3cret-pass",
		FullName: "John Doe",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "john.doe@example.com",
		Password: "other-pass",
		FullName: "John Impostor",
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestLogin_WithEmailAndLoginID(t *testing.T) {
	svc, _, _ := newTestService()

	registered, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "john.doe@example.com",
		Password: "s3cret-pass",
		FullName: "John Doe",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "john.doe@example.com",
		Password: "s3cret-pass",
	})
	assert.NoError(t, err)

	_, err = svc.LoginWithLoginID(context.Background(), auth.LoginIDRequest{
		LoginID:  *registered.User.LoginID,
		Password: "s3cret-pass",
	})
	assert.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "john.doe@example.com",
		Password: "s3cret-pass",
		FullName: "John Doe",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "john.doe@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_DeactivatedUser(t *testing.T) {
	svc, userRepo, _ := newTestService()

	registered, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "john.doe@example.com",
		Password: "s3cret-pass",
		FullName: "John Doe",
	})
	require.NoError(t, err)

	inactive := false
	_, err = userRepo.Update(context.Background(), user.UpdateUserRequest{
		ID:       registered.User.ID,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "john.doe@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, auth.ErrUserDeactivated)
}

func TestRefreshToken_RevokedRejected(t *testing.T) {
	svc, _, jwtRepo := newTestService()

	registered, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "john.doe@example.com",
		Password: "s3cret-pass",
		FullName: "John Doe",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, jwtRepo.RevokeRefreshToken(context.Background(), registered.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
