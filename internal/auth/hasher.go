package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// maxPasswordBytes is the bcrypt input limit. Longer passwords are truncated,
// so only their first 72 bytes are significant.
const maxPasswordBytes = 72

var (
	// ErrHash is returned when a stored hash is malformed or bcrypt fails internally.
	ErrHash = errors.New("hash error")
	// ErrInvalidCost is returned when the bcrypt cost is out of range.
	ErrInvalidCost = errors.New("invalid bcrypt cost")
)

// Hasher produces and verifies salted one-way password hashes.
// Implementations must be safe for concurrent use.
type Hasher interface {
	Hash(plaintext string) (string, error)
	// Verify returns (false, nil) on mismatch and an error wrapping ErrHash
	// only when hashText cannot be checked at all.
	Verify(plaintext, hashText string) (bool, error)
}

// BcryptHasher is a Hasher backed by bcrypt. It is immutable after construction.
type BcryptHasher struct {
	cost int
}

var _ Hasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a bcrypt hasher with the given work factor.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d must be in [%d, %d]", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// Hash returns the bcrypt encoding of plaintext with a fresh random salt.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(passwordBytes(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHash, err)
	}
	return string(hashed), nil
}

// Verify compares plaintext against the salt and digest embedded in hashText.
func (h *BcryptHasher) Verify(plaintext, hashText string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashText), passwordBytes(plaintext))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrHash, err)
	}
	return true, nil
}

func passwordBytes(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
