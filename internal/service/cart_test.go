package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/laptop_shop/internal/models"
)

func TestCartService_GetCart_CreatesEmptyCart(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "shopper")

	view, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, view.Cart.UserID)
	assert.Zero(t, view.Cart.Sum)
	assert.Empty(t, view.Items)

	// second call reuses the same cart
	again, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Cart.ID, again.Cart.ID)
	assert.Equal(t, int64(1), countRows(t, r, &models.Cart{}))
}

func TestCartService_AddItem_SumInvariant(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "shopper")
	laptop := seedProduct(t, r, "laptop", 1000, 10)
	mouse := seedProduct(t, r, "mouse", 25, 10)

	view, err := svc.AddItem(ctx, user.ID, laptop.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, view.Cart.Sum)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1000.0, view.Items[0].Price)

	view, err = svc.AddItem(ctx, user.ID, mouse.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 2000.0+100.0, view.Cart.Sum)
	assert.Len(t, view.Items, 2)
}

func TestCartService_AddItem_MergeRefreshesPriceSnapshot(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "shopper")
	product := seedProduct(t, r, "ssd", 100, 10)

	_, err := svc.AddItem(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, r.DB.Model(product).Update("price", 150).Error)

	view, err := svc.AddItem(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)

	// merged into one line at the current price
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(3), view.Items[0].Quantity)
	assert.Equal(t, 150.0, view.Items[0].Price)
	assert.Equal(t, 450.0, view.Cart.Sum)
}

func TestCartService_AddItem_Validation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "shopper")
	product := seedProduct(t, r, "laptop", 1000, 3)

	_, err := svc.AddItem(ctx, user.ID, product.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddItem(ctx, user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddItem(ctx, user.ID, product.ID, 4)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Zero(t, countRows(t, r, &models.CartDetail{}))
}

func TestCartService_UpdateItem(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "shopper")
	product := seedProduct(t, r, "laptop", 1000, 5)

	view, err := svc.AddItem(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)
	lineID := view.Items[0].ID

	view, err = svc.UpdateItem(ctx, user.ID, lineID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), view.Items[0].Quantity)
	assert.Equal(t, 3000.0, view.Cart.Sum)

	// stock is revalidated on update
	_, err = svc.UpdateItem(ctx, user.ID, lineID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// zero quantity deletes the line
	view, err = svc.UpdateItem(ctx, user.ID, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Cart.Sum)

	_, err = svc.UpdateItem(ctx, user.ID, lineID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_UpdateItem_OtherUsersLineIsForbidden(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	owner := seedUser(t, r, "owner")
	intruder := seedUser(t, r, "intruder")
	product := seedProduct(t, r, "laptop", 1000, 5)

	view, err := svc.AddItem(ctx, owner.ID, product.ID, 1)
	require.NoError(t, err)
	lineID := view.Items[0].ID

	// the intruder needs a cart of their own to get past the cart lookup
	_, err = svc.AddItem(ctx, intruder.ID, product.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, intruder.ID, lineID, 2)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.RemoveItem(ctx, intruder.ID, lineID)
	assert.ErrorIs(t, err, ErrForbidden)

	// owner's line untouched
	ownerView, err := svc.GetCart(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, ownerView.Items, 1)
	assert.Equal(t, int64(1), ownerView.Items[0].Quantity)
}

func TestCartService_RemoveItemAndClear(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "shopper")
	laptop := seedProduct(t, r, "laptop", 1000, 5)
	mouse := seedProduct(t, r, "mouse", 25, 5)

	_, err := svc.AddItem(ctx, user.ID, laptop.ID, 1)
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, user.ID, mouse.ID, 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	view, err = svc.RemoveItem(ctx, user.ID, view.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 50.0, view.Cart.Sum)

	require.NoError(t, svc.ClearCart(ctx, user.ID))

	view, err = svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Cart.Sum)

	// clearing a user without a cart is a no-op
	ghost := seedUser(t, r, "ghost")
	assert.NoError(t, svc.ClearCart(ctx, ghost.ID))
}
