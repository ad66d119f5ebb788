package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	// Tokens issued before this moment are rejected by the auth middleware,
	// so a password change forces re-login everywhere.
	PasswordChangedAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
