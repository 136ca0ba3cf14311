package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
)

// MockContactRepository is a mock implementation of ContactRepository.
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) List(ctx context.Context, userID uint) ([]model.Contact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByID(ctx context.Context, userID, id uint) (*model.Contact, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByName(ctx context.Context, userID uint, name string) (*model.Contact, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByLastname(ctx context.Context, userID uint, lastname string) (*model.Contact, error) {
	args := m.Called(ctx, userID, lastname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByEmail(ctx context.Context, userID uint, email string) (*model.Contact, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) UpdateContactInfo(ctx context.Context, userID, id uint, email, phone, additional string) (*model.Contact, error) {
	args := m.Called(ctx, userID, id, email, phone, additional)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockContactRepository) ListByBirthdayDOY(ctx context.Context, userID uint, startDOY, endDOY, todayDOY, todayEndDOY int) ([]model.Contact, error) {
	args := m.Called(ctx, userID, startDOY, endDOY, todayDOY, todayEndDOY)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contact), args.Error(1)
}

// newTestService wires a service with a nil cache (every lookup misses)
// and a frozen clock.
func newTestService(repo *MockContactRepository, now time.Time) *contactService {
	svc := NewContactService(repo, nil).(*contactService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestContactService_CreateSetsOwnerAndContactDate(t *testing.T) {
	now := time.Date(2023, 4, 10, 12, 0, 0, 0, time.UTC)
	mockRepo := new(MockContactRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Contact")).Return(nil)

	svc := newTestService(mockRepo, now)
	contact, err := svc.Create(context.Background(), 7, ContactInput{
		Name:     "Ann",
		Lastname: "Smith",
		Email:    "ann@example.com",
		Phone:    "555-0101",
		Birthday: time.Date(1990, 4, 13, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(7), contact.UserID)
	assert.Equal(t, now, contact.ContactDate)
	assert.Equal(t, "Ann", contact.Name)
	mockRepo.AssertExpectations(t)
}

func TestContactService_GetByIDNotFound(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7), uint(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(mockRepo, time.Now())
	contact, err := svc.GetByID(context.Background(), 7, 42)

	assert.Equal(t, apperrors.ErrContactNotFound, err)
	assert.Nil(t, contact)
}

func TestContactService_UpdateTouchesOnlyMutableFields(t *testing.T) {
	updated := &model.Contact{
		ID:          42,
		Name:        "Ann",
		Lastname:    "Smith",
		Email:       "new@example.com",
		Phone:       "555-0202",
		Additional:  "moved",
		ContactDate: time.Now(),
		UserID:      7,
	}
	mockRepo := new(MockContactRepository)
	mockRepo.On("UpdateContactInfo", mock.Anything, uint(7), uint(42), "new@example.com", "555-0202", "moved").
		Return(updated, nil)

	svc := newTestService(mockRepo, time.Now())
	contact, err := svc.Update(context.Background(), 7, 42, ContactUpdateInput{
		Email:      "new@example.com",
		Phone:      "555-0202",
		Additional: "moved",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ann", contact.Name)
	assert.Equal(t, "new@example.com", contact.Email)
	mockRepo.AssertExpectations(t)
}

func TestContactService_UpdateNotFound(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRepo.On("UpdateContactInfo", mock.Anything, uint(7), uint(42), mock.Anything, mock.Anything, mock.Anything).
		Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(mockRepo, time.Now())
	_, err := svc.Update(context.Background(), 7, 42, ContactUpdateInput{Email: "x@example.com", Phone: "555-0"})

	assert.Equal(t, apperrors.ErrContactNotFound, err)
}

func TestContactService_DeleteNotFound(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRepo.On("Delete", mock.Anything, uint(7), uint(42)).Return(gorm.ErrRecordNotFound)

	svc := newTestService(mockRepo, time.Now())
	err := svc.Delete(context.Background(), 7, 42)

	assert.Equal(t, apperrors.ErrContactNotFound, err)
}

func TestContactService_UpcomingBirthdaysRanges(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		startDOY int
		endDOY   int
		todayDOY int
		todayEnd int
	}{
		{
			name:     "mid-year",
			now:      time.Date(2023, 4, 10, 12, 0, 0, 0, time.UTC), // doy 100
			startDOY: 100, endDOY: 106, todayDOY: 100, todayEnd: 106,
		},
		{
			name:     "year-end wrap",
			now:      time.Date(2023, 12, 26, 12, 0, 0, 0, time.UTC), // doy 360
			startDOY: 0, endDOY: 1, todayDOY: 360, todayEnd: 366,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockContactRepository)
			mockRepo.On("ListByBirthdayDOY", mock.Anything, uint(7), tt.startDOY, tt.endDOY, tt.todayDOY, tt.todayEnd).
				Return([]model.Contact{}, nil)

			svc := newTestService(mockRepo, tt.now)
			_, err := svc.UpcomingBirthdays(context.Background(), 7)

			assert.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}
