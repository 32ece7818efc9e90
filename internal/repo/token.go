package repo

import (
	"context"

	"github.com/Skotchmaster/laptop_shop/internal/models"
)

func (r *GormRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(token).Error
}

func (r *GormRepo) FindRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.DB.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *GormRepo) DeleteRefreshToken(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.RefreshToken{}, id).Error
}

func (r *GormRepo) DeleteRefreshTokensForUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.RefreshToken{}).Error
}

func (r *GormRepo) CreateResetToken(ctx context.Context, token *models.PasswordResetToken) error {
	return r.DB.WithContext(ctx).Create(token).Error
}

func (r *GormRepo) FindResetToken(ctx context.Context, code string) (*models.PasswordResetToken, error) {
	var token models.PasswordResetToken
	err := r.DB.WithContext(ctx).
		Where("code = ?", code).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *GormRepo) DeleteResetToken(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.PasswordResetToken{}, id).Error
}

func (r *GormRepo) DeleteResetTokensForUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.PasswordResetToken{}).Error
}
