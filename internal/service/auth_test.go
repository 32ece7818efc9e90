package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/laptop_shop/internal/models"
	"github.com/Skotchmaster/laptop_shop/internal/tokens"
)

func TestAuthService_Register_DefaultRoleAndConflicts(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user := registerUser(t, svc, "alice")
	require.Len(t, user.Roles, 1)
	assert.Equal(t, "USER", user.Roles[0].ID)
	assert.NotEqual(t, "Secret123", user.PasswordHash)

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "x12345",
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Register(ctx, RegisterInput{
		Username: "alice2", Email: "alice@example.com", Password: "x12345",
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Register(ctx, RegisterInput{Username: "", Email: "", Password: ""})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_Login_IssuesTokensWithAuthorities(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	registerUser(t, svc, "bob")

	res, err := svc.Login(ctx, "bob", "Secret123")
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)

	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, svc.JWTSecret)
	require.NoError(t, err)
	assert.Contains(t, claims.Authorities, "USER")

	// refresh token is persisted hashed
	record, err := svc.Repo.FindRefreshToken(ctx, tokens.Sha256Hex(res.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, record.UserID)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), record.ExpiresAt, time.Minute)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	registerUser(t, svc, "carol")

	_, err := svc.Login(ctx, "carol", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "no-such-user", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// no refresh token row may survive a failed login
	assert.Zero(t, countRows(t, svc.Repo, &models.RefreshToken{}))
}

func TestAuthService_Refresh_Lifecycle(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	registerUser(t, svc, "dave")

	res, err := svc.Login(ctx, "dave", "Secret123")
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, access)

	claims, err := tokens.AccessClaimsFromToken(access, svc.JWTSecret)
	require.NoError(t, err)
	assert.Contains(t, claims.Authorities, "USER")

	_, err = svc.Refresh(ctx, "completely-unknown")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Refresh_ExpiredTokenIsDeleted(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	user := registerUser(t, svc, "erin")

	raw, err := tokens.NewOpaqueToken()
	require.NoError(t, err)
	require.NoError(t, svc.Repo.CreateRefreshToken(ctx, &models.RefreshToken{
		TokenHash: tokens.Sha256Hex(raw),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	_, err = svc.Refresh(ctx, raw)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// lazy garbage collection on use
	assert.Zero(t, countRows(t, svc.Repo, &models.RefreshToken{}))
}

func TestAuthService_Refresh_ErrorMapping(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	user := registerUser(t, svc, "oscar")

	res, err := svc.Login(ctx, "oscar", "Secret123")
	require.NoError(t, err)

	// a deleted account is an auth failure
	require.NoError(t, svc.Repo.DB.Delete(&models.User{}, user.ID).Error)
	_, err = svc.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// an infrastructure failure is not
	require.NoError(t, svc.Repo.DB.Migrator().DropTable(&models.User{}))
	_, err = svc.Refresh(ctx, res.RefreshToken)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Logout_RevokesAllRefreshTokens(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	registerUser(t, svc, "frank")

	first, err := svc.Login(ctx, "frank", "Secret123")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "frank", "Secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, first.User.ID))

	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	registerUser(t, svc, "grace")

	res, err := svc.Login(ctx, "grace", "Secret123")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, res.User.ID, "wrong-old", "NewSecret456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, res.User.ID, "Secret123", "NewSecret456"))

	// old refresh token revoked, new password effective
	_, err = svc.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "grace", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "grace", "NewSecret456")
	assert.NoError(t, err)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Parallel()

	svc, sender := newTestAuthService(t)
	ctx := context.Background()
	registerUser(t, svc, "heidi")

	err := svc.ForgotPassword(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	// resolves by email
	require.NoError(t, svc.ForgotPassword(ctx, "heidi@example.com"))
	assert.Equal(t, "heidi@example.com", sender.to)
	assert.Len(t, sender.code, 6)

	// resolves by username too
	require.NoError(t, svc.ForgotPassword(ctx, "heidi"))
	assert.Equal(t, int64(2), countRows(t, svc.Repo, &models.PasswordResetToken{}))
}

func TestAuthService_ForgotPassword_MailFailureKeepsOTP(t *testing.T) {
	t.Parallel()

	svc, sender := newTestAuthService(t)
	sender.err = assert.AnError
	ctx := context.Background()
	registerUser(t, svc, "ivan")

	err := svc.ForgotPassword(ctx, "ivan")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	// OTP persists even though dispatch failed
	assert.Equal(t, int64(1), countRows(t, svc.Repo, &models.PasswordResetToken{}))
}

func TestAuthService_ResetPassword_SingleUse(t *testing.T) {
	t.Parallel()

	svc, sender := newTestAuthService(t)
	ctx := context.Background()
	registerUser(t, svc, "judy")

	res, err := svc.Login(ctx, "judy", "Secret123")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "judy"))
	otp := sender.code

	require.NoError(t, svc.ResetPassword(ctx, otp, "Reset789"))

	_, err = svc.Login(ctx, "judy", "Reset789")
	assert.NoError(t, err)

	// OTP consumed, refresh tokens revoked
	err = svc.ResetPassword(ctx, otp, "Again000")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_ResetPassword_PurgesAllOutstandingCodes(t *testing.T) {
	t.Parallel()

	svc, sender := newTestAuthService(t)
	ctx := context.Background()
	registerUser(t, svc, "nina")

	require.NoError(t, svc.ForgotPassword(ctx, "nina"))
	firstOTP := sender.code
	require.NoError(t, svc.ForgotPassword(ctx, "nina"))
	secondOTP := sender.code
	require.Equal(t, int64(2), countRows(t, svc.Repo, &models.PasswordResetToken{}))

	require.NoError(t, svc.ResetPassword(ctx, secondOTP, "Reset789"))

	// earlier codes die with the one that was used
	assert.Zero(t, countRows(t, svc.Repo, &models.PasswordResetToken{}))
	err := svc.ResetPassword(ctx, firstOTP, "Sneak000")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ResetPassword_Expired(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	user := registerUser(t, svc, "mallory")

	require.NoError(t, svc.Repo.CreateResetToken(ctx, &models.PasswordResetToken{
		Code:      "123456",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	err := svc.ResetPassword(ctx, "123456", "Whatever1")
	assert.ErrorIs(t, err, ErrExpired)

	err = svc.ResetPassword(ctx, "999999", "Whatever1")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
