package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserDeactivated     = errors.New("user account is deactivated")

	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenCookieEmpty    = errors.New("refresh token cookie is empty")

	ErrGoogleAccessDeniedByUser = errors.New("google access denied by user")
	ErrStateCookieEmpty         = errors.New("state cookie is empty")
	ErrStateParamEmpty          = errors.New("state parameter is empty")
	ErrStateMismatch            = errors.New("oauth state mismatch")
)
