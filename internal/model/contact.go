package model

import "time"

// Contact represents a single address-book entry owned by a user.
type Contact struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:16;not null;index"`
	Lastname    string    `json:"lastname" gorm:"size:16;not null;index"`
	Email       string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone       string    `json:"phone" gorm:"uniqueIndex;size:16;not null"`
	Birthday    time.Time `json:"birthday" gorm:"type:date"`
	Additional  string    `json:"additional" gorm:"size:100"`
	ContactDate time.Time `json:"contact_date"` // last-modified timestamp
	UserID      uint      `json:"-" gorm:"index;not null"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
