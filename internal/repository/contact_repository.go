package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"contactbook/internal/model"
)

// ContactRepository defines contact persistence operations. Every query is
// scoped to the owning user.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	List(ctx context.Context, userID uint) ([]model.Contact, error)
	FindByID(ctx context.Context, userID, id uint) (*model.Contact, error)
	FindByName(ctx context.Context, userID uint, name string) (*model.Contact, error)
	FindByLastname(ctx context.Context, userID uint, lastname string) (*model.Contact, error)
	FindByEmail(ctx context.Context, userID uint, email string) (*model.Contact, error)
	UpdateContactInfo(ctx context.Context, userID, id uint, email, phone, additional string) (*model.Contact, error)
	Delete(ctx context.Context, userID, id uint) error
	ListByBirthdayDOY(ctx context.Context, userID uint, startDOY, endDOY, todayDOY, todayEndDOY int) ([]model.Contact, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository builds a GORM-backed repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) List(ctx context.Context, userID uint) ([]model.Contact, error) {
	var contacts []model.Contact
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) FindByID(ctx context.Context, userID, id uint) (*model.Contact, error) {
	return r.findOne(ctx, "id = ? AND user_id = ?", id, userID)
}

func (r *contactRepository) FindByName(ctx context.Context, userID uint, name string) (*model.Contact, error) {
	return r.findOne(ctx, "name = ? AND user_id = ?", name, userID)
}

func (r *contactRepository) FindByLastname(ctx context.Context, userID uint, lastname string) (*model.Contact, error) {
	return r.findOne(ctx, "lastname = ? AND user_id = ?", lastname, userID)
}

func (r *contactRepository) FindByEmail(ctx context.Context, userID uint, email string) (*model.Contact, error) {
	return r.findOne(ctx, "email = ? AND user_id = ?", email, userID)
}

func (r *contactRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.WithContext(ctx).Where(query, args...).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateContactInfo applies the update payload (email, phone, additional)
// in a read-modify-write cycle inside one transaction and refreshes the
// contact_date stamp. Other fields are left untouched.
func (r *contactRepository) UpdateContactInfo(ctx context.Context, userID, id uint, email, phone, additional string) (*model.Contact, error) {
	var contact model.Contact
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&contact).Error; err != nil {
			return err
		}
		contact.Email = email
		contact.Phone = phone
		contact.Additional = additional
		contact.ContactDate = time.Now()
		return tx.Save(&contact).Error
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByBirthdayDOY selects contacts whose birthday day-of-year falls in
// [startDOY, endDOY] or [todayDOY, todayEndDOY]. The two overlapping ranges
// mirror the window computation in the service layer; the first one carries
// the year-boundary wrap.
func (r *contactRepository) ListByBirthdayDOY(ctx context.Context, userID uint, startDOY, endDOY, todayDOY, todayEndDOY int) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("DAYOFYEAR(birthday) BETWEEN ? AND ? OR DAYOFYEAR(birthday) BETWEEN ? AND ?",
			startDOY, endDOY, todayDOY, todayEndDOY).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}
