package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_shop/internal/config"
	"github.com/Skotchmaster/laptop_shop/internal/models"
	"github.com/Skotchmaster/laptop_shop/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	// Named in-memory database shared across pooled connections but unique
	// per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.SeedRoles(db))

	return &repo.GormRepo{DB: db}
}

type fakeMail struct {
	to   string
	code string
	err  error
}

func (f *fakeMail) SendResetPasswordEmail(to, otpCode string) error {
	if f.err != nil {
		return f.err
	}
	f.to = to
	f.code = otpCode
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeMail) {
	t.Helper()
	sender := &fakeMail{}
	return &AuthService{
		Repo:      newTestRepo(t),
		Mail:      sender,
		JWTSecret: []byte("test-jwt-secret"),
	}, sender
}

func registerUser(t *testing.T, svc *AuthService, username string) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "Secret123",
	})
	require.NoError(t, err)
	return user
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64, quantity int64) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: price, Quantity: quantity}
	require.NoError(t, r.DB.Create(product).Error)
	return product
}

func seedUser(t *testing.T, r *repo.GormRepo, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, r.DB.Create(user).Error)
	return user
}

func seedCoupon(t *testing.T, r *repo.GormRepo, code string, discount, minOrder float64, active bool, expiry time.Time) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		Code:           code,
		DiscountAmount: discount,
		MinOrderAmount: minOrder,
		Active:         active,
		ExpiryDate:     expiry,
	}
	require.NoError(t, r.DB.Create(coupon).Error)
	return coupon
}

func countRows(t *testing.T, r *repo.GormRepo, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, r.DB.Model(model).Count(&count).Error)
	return count
}

func reloadProduct(t *testing.T, r *repo.GormRepo, id uint) *models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, r.DB.First(&product, id).Error)
	return &product
}
