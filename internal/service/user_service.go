package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"contactbook/internal/model"
	"contactbook/internal/repository"
)

// ObjectStorage uploads a blob and returns its public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

// UserService exposes profile operations for the authenticated user.
type UserService interface {
	UpdateAvatar(ctx context.Context, user *model.User, filename string, file io.Reader) (*model.User, error)
}

type userService struct {
	users   repository.UserRepository
	storage ObjectStorage
}

// NewUserService builds a UserService with repository and object storage.
func NewUserService(users repository.UserRepository, storage ObjectStorage) UserService {
	return &userService{users: users, storage: storage}
}

// UpdateAvatar stores the uploaded image and writes its URL to the user row.
// Keys are random so a re-upload never races a stale CDN copy.
func (s *userService) UpdateAvatar(ctx context.Context, user *model.User, filename string, file io.Reader) (*model.User, error) {
	key := "avatars/" + uuid.New().String() + path.Ext(filename)
	url, err := s.storage.Upload(ctx, key, file)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}
	if err := s.users.UpdateAvatar(ctx, user, url); err != nil {
		return nil, fmt.Errorf("save avatar url: %w", err)
	}
	return user, nil
}
