package repository

import (
	"context"

	"gorm.io/gorm"

	"contactbook/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateRefreshToken(ctx context.Context, user *model.User, token string) error
	ConfirmEmail(ctx context.Context, email string) error
	UpdateAvatar(ctx context.Context, user *model.User, avatarURL string) error
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

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateRefreshToken overwrites the stored refresh token. Pass "" to revoke.
func (r *userRepository) UpdateRefreshToken(ctx context.Context, user *model.User, token string) error {
	if err := r.db.WithContext(ctx).Model(user).Update("refresh_token", token).Error; err != nil {
		return err
	}
	user.RefreshToken = token
	return nil
}

func (r *userRepository) ConfirmEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Update("confirmed", true).Error
}

func (r *userRepository) UpdateAvatar(ctx context.Context, user *model.User, avatarURL string) error {
	if err := r.db.WithContext(ctx).Model(user).Update("avatar", avatarURL).Error; err != nil {
		return err
	}
	user.Avatar = avatarURL
	return nil
}
