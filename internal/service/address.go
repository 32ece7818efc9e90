package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_shop/internal/models"
	"github.com/Skotchmaster/laptop_shop/internal/repo"
)

type AddressService struct {
	Repo *repo.GormRepo
}

type AddressInput struct {
	ReceiverName string
	Phone        string
	City         string
	District     string
	Ward         string
	Street       string
	IsDefault    bool
}

func (s *AddressService) MyAddresses(ctx context.Context, userID uint) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

// CreateAddress saves a new delivery address. The user's first address becomes
// the default automatically; an explicit default displaces the current one.
func (s *AddressService) CreateAddress(ctx context.Context, userID uint, in AddressInput) (*models.Address, error) {
	if in.ReceiverName == "" || in.Street == "" {
		return nil, fmt.Errorf("%w: receiver name and street are required", ErrValidation)
	}

	address := &models.Address{
		UserID:       userID,
		ReceiverName: in.ReceiverName,
		Phone:        in.Phone,
		City:         in.City,
		District:     in.District,
		Ward:         in.Ward,
		Street:       in.Street,
		IsDefault:    in.IsDefault,
	}
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if in.IsDefault {
			if err := tx.UnsetDefaultAddress(ctx, userID); err != nil {
				return err
			}
		} else {
			count, err := tx.CountAddresses(ctx, userID)
			if err != nil {
				return err
			}
			if count == 0 {
				address.IsDefault = true
			}
		}
		return tx.CreateAddress(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) UpdateAddress(ctx context.Context, userID, id uint, in AddressInput) (*models.Address, error) {
	if in.ReceiverName == "" || in.Street == "" {
		return nil, fmt.Errorf("%w: receiver name and street are required", ErrValidation)
	}

	var address *models.Address
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		address, err = s.ownAddress(ctx, tx, userID, id)
		if err != nil {
			return err
		}

		if in.IsDefault && !address.IsDefault {
			if err := tx.UnsetDefaultAddress(ctx, userID); err != nil {
				return err
			}
		}

		address.ReceiverName = in.ReceiverName
		address.Phone = in.Phone
		address.City = in.City
		address.District = in.District
		address.Ward = in.Ward
		address.Street = in.Street
		address.IsDefault = in.IsDefault
		return tx.SaveAddress(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) DeleteAddress(ctx context.Context, userID, id uint) error {
	address, err := s.ownAddress(ctx, s.Repo, userID, id)
	if err != nil {
		return err
	}
	return s.Repo.DeleteAddress(ctx, address.ID)
}

// SetDefaultAddress makes one address the default and clears the flag on all
// others, so at most one default exists per user.
func (s *AddressService) SetDefaultAddress(ctx context.Context, userID, id uint) (*models.Address, error) {
	var address *models.Address
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		address, err = s.ownAddress(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		if address.IsDefault {
			return nil
		}
		if err := tx.UnsetDefaultAddress(ctx, userID); err != nil {
			return err
		}
		address.IsDefault = true
		return tx.SaveAddress(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) ownAddress(ctx context.Context, r *repo.GormRepo, userID, id uint) (*models.Address, error) {
	address, err := r.FindAddress(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: address %d", ErrNotFound, id)
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, fmt.Errorf("%w: address belongs to another user", ErrForbidden)
	}
	return address, nil
}
