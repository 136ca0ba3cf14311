package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"contactbook/internal/cache"
	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

const contactCacheTTL = 5 * time.Minute

// ContactInput carries the create payload.
type ContactInput struct {
	Name       string
	Lastname   string
	Email      string
	Phone      string
	Birthday   time.Time
	Additional string
}

// ContactUpdateInput carries the update payload; only these three fields
// are mutable after creation.
type ContactUpdateInput struct {
	Email      string
	Phone      string
	Additional string
}

// ContactService exposes the contact operations, always scoped to the
// calling user.
type ContactService interface {
	List(ctx context.Context, userID uint) ([]model.Contact, error)
	GetByID(ctx context.Context, userID, id uint) (*model.Contact, error)
	GetByName(ctx context.Context, userID uint, name string) (*model.Contact, error)
	GetByLastname(ctx context.Context, userID uint, lastname string) (*model.Contact, error)
	GetByEmail(ctx context.Context, userID uint, email string) (*model.Contact, error)
	Create(ctx context.Context, userID uint, input ContactInput) (*model.Contact, error)
	Update(ctx context.Context, userID, id uint, input ContactUpdateInput) (*model.Contact, error)
	Delete(ctx context.Context, userID, id uint) error
	UpcomingBirthdays(ctx context.Context, userID uint) ([]model.Contact, error)
}

type contactService struct {
	repo  repository.ContactRepository
	cache *cache.Client
	now   func() time.Time
}

// NewContactService builds a ContactService with repository and cache.
func NewContactService(repo repository.ContactRepository, cache *cache.Client) ContactService {
	return &contactService{repo: repo, cache: cache, now: time.Now}
}

func (s *contactService) cacheKey(userID, id uint) string {
	return fmt.Sprintf("contact:%d:%d", userID, id)
}

func (s *contactService) List(ctx context.Context, userID uint) ([]model.Contact, error) {
	return s.repo.List(ctx, userID)
}

func (s *contactService) GetByID(ctx context.Context, userID, id uint) (*model.Contact, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID, id)); data != nil {
		var cached model.Contact
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	contact, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}

	if payload, err := json.Marshal(contact); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID, id), payload, contactCacheTTL)
	}
	return contact, nil
}

func (s *contactService) GetByName(ctx context.Context, userID uint, name string) (*model.Contact, error) {
	contact, err := s.repo.FindByName(ctx, userID, name)
	if err != nil {
		return nil, notFound(err)
	}
	return contact, nil
}

func (s *contactService) GetByLastname(ctx context.Context, userID uint, lastname string) (*model.Contact, error) {
	contact, err := s.repo.FindByLastname(ctx, userID, lastname)
	if err != nil {
		return nil, notFound(err)
	}
	return contact, nil
}

func (s *contactService) GetByEmail(ctx context.Context, userID uint, email string) (*model.Contact, error) {
	contact, err := s.repo.FindByEmail(ctx, userID, email)
	if err != nil {
		return nil, notFound(err)
	}
	return contact, nil
}

func (s *contactService) Create(ctx context.Context, userID uint, input ContactInput) (*model.Contact, error) {
	contact := &model.Contact{
		Name:        input.Name,
		Lastname:    input.Lastname,
		Email:       input.Email,
		Phone:       input.Phone,
		Birthday:    input.Birthday,
		Additional:  input.Additional,
		ContactDate: s.now(),
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) Update(ctx context.Context, userID, id uint, input ContactUpdateInput) (*model.Contact, error) {
	contact, err := s.repo.UpdateContactInfo(ctx, userID, id, input.Email, input.Phone, input.Additional)
	if err != nil {
		return nil, notFound(err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return notFound(err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return nil
}

// UpcomingBirthdays returns the user's contacts whose birthday (month-day,
// year ignored) falls within the next 7 days including today.
func (s *contactService) UpcomingBirthdays(ctx context.Context, userID uint) ([]model.Contact, error) {
	w := newBirthdayWindow(s.now())
	return s.repo.ListByBirthdayDOY(ctx, userID, w.StartDOY, w.NextDOY-1, w.TodayDOY, w.TodayDOY+6)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrContactNotFound
	}
	return err
}
