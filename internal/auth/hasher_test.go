package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewBcryptHasher_Cost(t *testing.T) {
	h, err := NewBcryptHasher(DefaultCost)
	require.NoError(t, err)
	assert.Equal(t, 10, h.Cost())

	for _, cost := range []int{0, bcrypt.MinCost - 1, bcrypt.MaxCost + 1} {
		_, err := NewBcryptHasher(cost)
		assert.ErrorIs(t, err, ErrInvalidCost)
	}
}

func TestBcryptHasher_HashIsSaltedAndNeverPlaintext(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("secret")
	require.NoError(t, err)
	second, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, "secret", first)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "$2a$"))

	cost, err := bcrypt.Cost([]byte(first))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_Verify(t *testing.T) {
	h := newTestHasher(t)

	for _, pw := range []string{"secret", "", "contraseña con espacios", strings.Repeat("x", 72)} {
		hashed, err := h.Hash(pw)
		require.NoError(t, err)

		ok, err := h.Verify(pw, hashed)
		require.NoError(t, err)
		assert.True(t, ok, "password %q", pw)
	}

	hashed, err := h.Hash("secret")
	require.NoError(t, err)
	ok, err := h.Verify("wrong", hashed)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_VerifyMalformedHash(t *testing.T) {
	h := newTestHasher(t)

	for _, bad := range []string{"", "plaintext", "$2a$10$short"} {
		ok, err := h.Verify("secret", bad)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrHash, "hash %q", bad)
	}
}

func TestBcryptHasher_LongPasswordIsTruncated(t *testing.T) {
	h := newTestHasher(t)
	long := strings.Repeat("x", 73)

	hashed, err := h.Hash(long)
	require.NoError(t, err)

	ok, err := h.Verify(long, hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(strings.Repeat("x", 72)+"y", hashed)
	require.NoError(t, err)
	assert.True(t, ok, "bytes past 72 are not significant")

	ok, err = h.Verify(strings.Repeat("x", 71), hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}
