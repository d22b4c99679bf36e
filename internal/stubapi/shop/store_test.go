package shop_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/stubapi/passwords"
	"shopfront/internal/stubapi/shop"
)

func newStore(t *testing.T) (*shop.Store, *shop.User) {
	t.Helper()
	now := func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	s := shop.NewStore(passwords.NewBcrypt(bcrypt.MinCost), shop.DefaultCatalog(), now)

	u, err := s.Register(context.Background(), "alice", "alice@example.com", "", "secret123")
	require.NoError(t, err)
	return s, u
}

var address = shop.Address{FullName: "Alice", AddressLine1: "1 Main St", City: "Pune", ZipCode: "411001", Country: "IN"}

func TestStore_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s, u := newStore(t)

	_, err := s.Register(ctx, "ALICE", "other@example.com", "", "secret123")
	assert.ErrorIs(t, err, shop.ErrUserExists, "usernames are case insensitive")

	_, err = s.Register(ctx, "bob", "bob@example.com", "", "123")
	assert.ErrorIs(t, err, passwords.ErrInvalidPassword)

	got, err := s.Authenticate(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Authenticate(ctx, "alice", "wrong-pass")
	assert.ErrorIs(t, err, shop.ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, shop.ErrInvalidCredentials)
}

func TestStore_CartTotals(t *testing.T) {
	s, u := newStore(t)

	_, err := s.AddToCart(u.ID, 1)
	require.NoError(t, err)
	_, err = s.AddToCart(u.ID, 1)
	require.NoError(t, err)
	_, err = s.AddToCart(u.ID, 3)
	require.NoError(t, err)

	cart := s.Cart(u.ID)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.InDelta(t, 2*1199.2+1949.35, float64(cart.TotalDiscountedPrice), 0.001)
	assert.InDelta(t, 2*299.8+1049.65, float64(cart.TotalDiscount), 0.001)

	price, cart, err := s.UpdateCart(u.ID, 3, 3)
	require.NoError(t, err)
	assert.InDelta(t, 1949.35, float64(price), 0.001)
	assert.InDelta(t, 2*1199.2+3*1949.35, float64(cart.TotalDiscountedPrice), 0.001)

	_, _, err = s.UpdateCart(u.ID, 2, 1)
	assert.ErrorIs(t, err, shop.ErrNotInCart)
	_, _, err = s.UpdateCart(u.ID, 1, 0)
	assert.ErrorIs(t, err, shop.ErrInvalidQuantity)

	_, err = s.RemoveFromCart(u.ID, 3)
	require.NoError(t, err)
	assert.Len(t, s.Cart(u.ID).Items, 1)

	_, err = s.AddToCart(u.ID, 4)
	assert.ErrorIs(t, err, shop.ErrOutOfStock)
	_, err = s.AddToCart(u.ID, 99)
	assert.True(t, shop.IsNotFound(err))
}

func TestStore_Checkout(t *testing.T) {
	s, u := newStore(t)

	_, err := s.Checkout(u.ID, address.String())
	assert.ErrorIs(t, err, shop.ErrEmptyCart)

	_, err = s.AddToCart(u.ID, 2)
	require.NoError(t, err)

	order, err := s.Checkout(u.ID, address.String())
	require.NoError(t, err)
	assert.Equal(t, shop.OrderStatusPending, order.Status)
	assert.Equal(t, "Alice, 1 Main St, Pune,  411001, IN", order.ShippingAddress)
	assert.Empty(t, s.Cart(u.ID).Items, "checkout empties the cart")

	detail, err := s.Product(2)
	require.NoError(t, err)
	assert.Equal(t, 9, detail.Stock)

	_, err = s.BuyNow(u.ID, 2, 100, address.String())
	assert.ErrorIs(t, err, shop.ErrOutOfStock)

	second, err := s.BuyNow(u.ID, 1, 2, address.String())
	require.NoError(t, err)

	orders := s.Orders(u.ID)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID, "newest first")

	_, err = s.Order(u.ID+1, order.ID)
	assert.ErrorIs(t, err, shop.ErrOrderNotFound)
}

func TestStore_Reviews(t *testing.T) {
	s, u := newStore(t)

	require.NoError(t, s.AddReview(u.ID, 1, 4, "good"))
	assert.ErrorIs(t, s.AddReview(u.ID, 1, 5, "again"), shop.ErrDuplicateReview)
	assert.ErrorIs(t, s.AddReview(u.ID, 2, 6, "too good"), shop.ErrInvalidRating)

	reviews, err := s.Reviews(1)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "alice", reviews[0].User)

	detail, err := s.Product(1)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, detail.AverageRating, 0.001)
	assert.Len(t, detail.SimilarProducts, 3)
	assert.Equal(t, []string{"Stainless steel body", "Auto shut-off", "1500W"}, detail.DescriptionPoints)
}

func TestStore_Search(t *testing.T) {
	s, _ := newStore(t)

	results := s.Search("KETTLE")
	require.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].ID)

	assert.Empty(t, s.Search("piano"))
	assert.Equal(t, []string{"Kettle", "Kettlebell"}, s.Suggestions("kett"))
	assert.Empty(t, s.Suggestions("  "))
}

func TestStore_Wishlist(t *testing.T) {
	s, u := newStore(t)

	added, err := s.ToggleWishlist(u.ID, 3)
	require.NoError(t, err)
	assert.True(t, added)

	in, err := s.InWishlist(u.ID, 3)
	require.NoError(t, err)
	assert.True(t, in)
	assert.Len(t, s.Wishlist(u.ID), 1)

	added, err = s.ToggleWishlist(u.ID, 3)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, s.Wishlist(u.ID))

	require.NoError(t, s.RemoveFromWishlist(u.ID, 3), "removing an absent product is not an error")
	_, err = s.ToggleWishlist(u.ID, 42)
	assert.ErrorIs(t, err, shop.ErrProductNotFound)
}

func TestStore_PasswordReset(t *testing.T) {
	ctx := context.Background()
	s, u := newStore(t)

	_, _, ok := s.RequestPasswordReset("nobody@example.com")
	assert.False(t, ok)

	uid, token, ok := s.RequestPasswordReset("Alice@Example.com")
	require.True(t, ok)

	id, err := shop.DecodeUID(uid)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	assert.ErrorIs(t, s.ConfirmPasswordReset(ctx, shop.EncodeUID(u.ID+1), token, "changed123"), shop.ErrInvalidResetToken)
	require.NoError(t, s.ConfirmPasswordReset(ctx, uid, token, "changed123"))
	assert.ErrorIs(t, s.ConfirmPasswordReset(ctx, uid, token, "changed456"), shop.ErrInvalidResetToken)

	_, err = s.Authenticate(ctx, "alice", "changed123")
	assert.NoError(t, err)
}

func TestStore_Addresses(t *testing.T) {
	s, u := newStore(t)

	_, err := s.AddAddress(u.ID, shop.Address{FullName: "Alice"})
	assert.ErrorIs(t, err, shop.ErrInvalidAddress)

	saved, err := s.AddAddress(u.ID, address)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	got, err := s.Address(u.ID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.FullName)

	_, err = s.Address(u.ID+1, saved.ID)
	assert.ErrorIs(t, err, shop.ErrAddressNotFound)

	require.NoError(t, s.DeleteAddress(u.ID, saved.ID))
	assert.ErrorIs(t, s.DeleteAddress(u.ID, saved.ID), shop.ErrAddressNotFound)
}

func TestStore_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	s, u := newStore(t)

	other, err := s.Register(ctx, "bob", "bob@example.com", "", "secret123")
	require.NoError(t, err)

	_, err = s.UpdateProfile(other.ID, "Alice", "", "bob@example.com", "")
	assert.ErrorIs(t, err, shop.ErrUserExists)

	updated, err := s.UpdateProfile(u.ID, "alicia", "Alice A.", "alicia@example.com", "+100")
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", updated.FullName)

	_, err = s.Authenticate(ctx, "alicia", "secret123")
	assert.NoError(t, err)
	_, err = s.Authenticate(ctx, "alice", "secret123")
	assert.ErrorIs(t, err, shop.ErrInvalidCredentials)
}
