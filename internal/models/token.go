package models

import "time"

const TokenTypeBearer = "bearer"

// Token is a persisted session. Its ID is carried as the jti of the cookie credential.
type Token struct {
	ID        string    `gorm:"primaryKey;size:36" json:"access_token"`
	UserID    string    `gorm:"index;size:36;not null" json:"user_id"`
	IssuedAt  time.Time `gorm:"not null" json:"issued_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires"`
	TokenType string    `gorm:"size:16;not null" json:"token_type"`
}
