package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"usuarios/internal/auth"
	apperrors "usuarios/internal/errors"
	"usuarios/internal/model"
	"usuarios/internal/repository"
)

// DefaultQueryTimeout bounds each store call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

// AuthService handles registration and login.
type AuthService interface {
	// Register creates a user for mail. It returns apperrors.ErrConflict when
	// the mail is already linked to an account.
	Register(ctx context.Context, mail, password string) (*model.User, error)
	// Login returns the user whose mail and password match.
	Login(ctx context.Context, mail, password string) (*model.User, error)
}

type authService struct {
	userRepo     repository.UserRepository
	hasher       auth.Hasher
	queryTimeout time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher auth.Hasher, queryTimeout time.Duration) AuthService {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return &authService{
		userRepo:     userRepo,
		hasher:       hasher,
		queryTimeout: queryTimeout,
	}
}

// Register validates input, rejects known mails, hashes the password and inserts the row.
// The unique index on mail closes the window between the lookup and the insert.
func (s *authService) Register(ctx context.Context, mail, password string) (*model.User, error) {
	if mail == "" || password == "" {
		return nil, apperrors.ErrValidation
	}

	existing, err := s.findByMail(ctx, mail)
	if err == nil && existing != nil {
		return nil, apperrors.ErrConflict
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: check user existence: %w", apperrors.ErrInternal, err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %w", apperrors.ErrInternal, err)
	}

	user := &model.User{
		Mail:         mail,
		PasswordHash: hashed,
	}

	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := s.userRepo.Create(qctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("%w: create user: %w", apperrors.ErrUserCreation, err)
	}

	return user, nil
}

// Login looks the user up by mail and verifies the password against the stored hash.
func (s *authService) Login(ctx context.Context, mail, password string) (*model.User, error) {
	if mail == "" || password == "" {
		return nil, apperrors.ErrValidation
	}

	user, err := s.findByMail(ctx, mail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user: %w", apperrors.ErrInternal, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%w: verify password for user %d: %w", apperrors.ErrInternal, user.ID, err)
	}
	if !ok {
		return nil, apperrors.ErrAuth
	}

	return user, nil
}

func (s *authService) findByMail(ctx context.Context, mail string) (*model.User, error) {
	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return s.userRepo.FindByMail(qctx, mail)
}
