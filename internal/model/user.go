package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password     string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	Avatar       string    `json:"avatar,omitempty" gorm:"size:255"`
	RefreshToken string    `json:"-" gorm:"size:512"` // currently valid refresh token, empty when revoked
	Confirmed    bool      `json:"confirmed" gorm:"default:false"`
}
