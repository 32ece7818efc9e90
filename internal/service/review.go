package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/laptop_shop/internal/models"
)

func (s *CatalogService) ProductReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.Repo.ListReviewsByProduct(ctx, productID)
}

func (s *CatalogService) AddReview(ctx context.Context, userID, productID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
