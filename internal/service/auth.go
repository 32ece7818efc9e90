package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_shop/internal/hash"
	"github.com/Skotchmaster/laptop_shop/internal/logging"
	"github.com/Skotchmaster/laptop_shop/internal/mail"
	"github.com/Skotchmaster/laptop_shop/internal/models"
	"github.com/Skotchmaster/laptop_shop/internal/repo"
	"github.com/Skotchmaster/laptop_shop/internal/tokens"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
	resetTokenTTL   = 15 * time.Minute

	defaultRole = "USER"
)

type AuthService struct {
	Repo      *repo.GormRepo
	Mail      mail.Sender
	JWTSecret []byte
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
	Address  string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	User         *models.User
}

// Authorities flattens the user's roles and permissions into the names
// embedded into the access token.
func Authorities(user *models.User) []string {
	var out []string
	seen := map[string]bool{}
	for _, role := range user.Roles {
		if !seen[role.ID] {
			seen[role.ID] = true
			out = append(out, role.ID)
		}
		for _, p := range role.Permissions {
			if !seen[p.ID] {
				seen[p.ID] = true
				out = append(out, p.ID)
			}
		}
	}
	return out
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	if exists, err := s.Repo.UserExistsByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%w: username already exists", ErrConflict)
	}
	if exists, err := s.Repo.UserExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%w: email already exists", ErrConflict)
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role, err := s.Repo.FindRole(ctx, defaultRole)
	if err != nil {
		return nil, fmt.Errorf("default role missing: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: pwHash,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Address:      in.Address,
		Roles:        []models.Role{*role},
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bad username or password", ErrInvalidCredentials)
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: bad username or password", ErrInvalidCredentials)
	}

	accessExp := time.Now().Add(accessTokenTTL)
	access, err := tokens.SignAccessToken(
		strconv.FormatUint(uint64(user.ID), 10),
		Authorities(user),
		s.JWTSecret,
		accessTokenTTL,
	)
	if err != nil {
		return nil, err
	}

	refresh, err := tokens.NewOpaqueToken()
	if err != nil {
		return nil, err
	}
	record := &models.RefreshToken{
		TokenHash: tokens.Sha256Hex(refresh),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.Repo.CreateRefreshToken(ctx, record); err != nil {
		return nil, err
	}

	l.Info("login", "user_id", user.ID)
	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		User:         user,
	}, nil
}

// Refresh exchanges a stored refresh token for a new access token. The
// refresh token itself is not rotated; expired records are deleted on use.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (string, error) {
	record, err := s.Repo.FindRefreshToken(ctx, tokens.Sha256Hex(rawToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: unknown refresh token", ErrUnauthorized)
		}
		return "", err
	}
	if time.Now().After(record.ExpiresAt) {
		if err := s.Repo.DeleteRefreshToken(ctx, record.ID); err != nil {
			logging.FromContext(ctx).Warn("delete expired refresh token", "error", err)
		}
		return "", fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
	}

	user, err := s.Repo.FindUserByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: user gone", ErrUnauthorized)
		}
		return "", err
	}

	return tokens.SignAccessToken(
		strconv.FormatUint(uint64(user.ID), 10),
		Authorities(user),
		s.JWTSecret,
		accessTokenTTL,
	)
}

// Logout revokes every refresh token the user owns. Outstanding access
// tokens stay valid until their own expiry.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	return s.Repo.DeleteRefreshTokensForUser(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}
	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		user, err := tx.FindUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user", ErrNotFound)
			}
			return err
		}
		if !hash.CheckPassword(user.PasswordHash, oldPassword) {
			return fmt.Errorf("%w: old password does not match", ErrInvalidCredentials)
		}

		pwHash, err := hash.HashPassword(newPassword)
		if err != nil {
			return err
		}
		if err := tx.UpdateUserPassword(ctx, userID, pwHash); err != nil {
			return err
		}
		return tx.DeleteRefreshTokensForUser(ctx, userID)
	})
}

// ForgotPassword resolves the identifier as email first, then username,
// persists a short-lived OTP and mails it. A mail failure leaves the OTP in
// place and is surfaced to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, identifier string) error {
	l := logging.FromContext(ctx).With("svc", "auth.forgot_password")

	user, err := s.Repo.FindUserByEmail(ctx, identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.Repo.FindUserByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: account", ErrNotFound)
		}
		return err
	}

	otp, err := tokens.NewOTP()
	if err != nil {
		return err
	}
	record := &models.PasswordResetToken{
		Code:      otp,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.Repo.CreateResetToken(ctx, record); err != nil {
		return err
	}

	if err := s.Mail.SendResetPasswordEmail(user.Email, otp); err != nil {
		l.Error("reset mail dispatch failed", "user_id", user.ID, "error", err)
		return fmt.Errorf("send reset mail: %w", err)
	}

	l.Info("reset otp issued", "user_id", user.ID)
	return nil
}

// ResetPassword consumes the OTP: every outstanding reset code and refresh
// token of the account is revoked in the same transaction.
func (s *AuthService) ResetPassword(ctx context.Context, otp, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}
	record, err := s.Repo.FindResetToken(ctx, otp)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unknown reset code", ErrInvalidToken)
		}
		return err
	}
	if time.Now().After(record.ExpiresAt) {
		// expired codes are garbage-collected on use
		if err := s.Repo.DeleteResetToken(ctx, record.ID); err != nil {
			logging.FromContext(ctx).Warn("delete expired reset token", "error", err)
		}
		return fmt.Errorf("%w: reset code expired", ErrExpired)
	}

	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		pwHash, err := hash.HashPassword(newPassword)
		if err != nil {
			return err
		}
		if err := tx.UpdateUserPassword(ctx, record.UserID, pwHash); err != nil {
			return err
		}
		if err := tx.DeleteResetTokensForUser(ctx, record.UserID); err != nil {
			return err
		}
		return tx.DeleteRefreshTokensForUser(ctx, record.UserID)
	})
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

type ProfileUpdate struct {
	Email    string
	FullName string
	Phone    string
	Address  string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		if exists, err := s.Repo.UserExistsByEmail(ctx, in.Email); err != nil {
			return nil, err
		} else if exists {
			return nil, fmt.Errorf("%w: email already exists", ErrConflict)
		}
		user.Email = in.Email
	}
	user.FullName = in.FullName
	user.Phone = in.Phone
	user.Address = in.Address

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
