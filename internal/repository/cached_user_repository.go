package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"usuarios/internal/cache"
	"usuarios/internal/model"
)

const userCacheKeyPrefix = "usuario:mail:"

// cachedUser is the cache payload. model.User hides the hash from JSON.
type cachedUser struct {
	ID           uint   `json:"id"`
	Mail         string `json:"mail"`
	PasswordHash string `json:"password_hash"`
}

type cachedUserRepository struct {
	UserRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewCachedUserRepository puts a read-through cache in front of FindByMail.
// Users are never updated or deleted, so a cached entry stays valid until it expires.
// A nil cache returns repo unchanged.
func NewCachedUserRepository(repo UserRepository, c *cache.Client, ttl time.Duration) UserRepository {
	if c == nil {
		return repo
	}
	return &cachedUserRepository{UserRepository: repo, cache: c, ttl: ttl}
}

func (r *cachedUserRepository) cacheKey(mail string) string {
	return fmt.Sprintf("%s%s", userCacheKeyPrefix, mail)
}

func (r *cachedUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.UserRepository.Create(ctx, user); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, r.cacheKey(user.Mail))
	return nil
}

func (r *cachedUserRepository) FindByMail(ctx context.Context, mail string) (*model.User, error) {
	if data, _ := r.cache.Get(ctx, r.cacheKey(mail)); data != nil {
		var cached cachedUser
		if err := json.Unmarshal(data, &cached); err == nil {
			return &model.User{ID: cached.ID, Mail: cached.Mail, PasswordHash: cached.PasswordHash}, nil
		}
	}

	user, err := r.UserRepository.FindByMail(ctx, mail)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cachedUser{ID: user.ID, Mail: user.Mail, PasswordHash: user.PasswordHash})
	if err == nil {
		_ = r.cache.Set(ctx, r.cacheKey(mail), payload, r.ttl)
	}
	return user, nil
}
