package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"     json:"id"`
	Username     string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null"                     json:"-"`
}

// Session rows are the source of truth for token validity: a token can be
// revoked by deleting its row even though the JWT itself is still signed.
type Session struct {
	ID        uint      `gorm:"primaryKey"                  json:"id"`
	Token     string    `gorm:"uniqueIndex;not null"        json:"token"`
	UserID    uint      `gorm:"index;not null"              json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index;not null"              json:"expires_at"`
}
