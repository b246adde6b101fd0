package repository

import (
	"context"

	"gorm.io/gorm"

	"usuarios/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	// Create inserts user and fills its ID. A duplicate mail yields gorm.ErrDuplicatedKey.
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	// FindByMail returns gorm.ErrRecordNotFound when no user has mail.
	FindByMail(ctx context.Context, mail string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByMail(ctx context.Context, mail string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("mail = ?", mail).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
