package passwords_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/stubapi/passwords"
)

func TestBcrypt(t *testing.T) {
	ctx := context.Background()
	h := passwords.NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash(ctx, "s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	ok, err := h.Verify(ctx, "s3cret!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(ctx, "wrong!!", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Verify(ctx, "s3cret!", "not-a-hash")
	assert.Error(t, err)
}

func TestBcrypt_RejectsWeakPasswords(t *testing.T) {
	h := passwords.NewBcrypt(0)

	_, err := h.Hash(context.Background(), "")
	assert.ErrorIs(t, err, passwords.ErrInvalidPassword)

	_, err = h.Hash(context.Background(), "abc")
	assert.ErrorIs(t, err, passwords.ErrInvalidPassword)

	_, err = h.Verify(context.Background(), "", "hash")
	assert.ErrorIs(t, err, passwords.ErrInvalidPassword)
}
