package session

import (
	"time"

	userModel "fleetflow/models/user"
)

// Session is the persisted counterpart of an issued token pair. Refresh
// replaces ambient client-side storage with an explicit server-side record.
type Session struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Opaque session identifier carried in the access token claims
	TokenID string `gorm:"type:varchar(36);not null;unique" json:"token_id"`

	// Foreign key for user relationship
	UserID uint           `gorm:"not null;index" json:"user_id"`
	User   userModel.User `gorm:"foreignKey:UserID" json:"user"`

	// SHA-256 of the refresh token; the raw value is never stored
	RefreshTokenHash string `gorm:"type:varchar(64);not null;index" json:"-"`

	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsUsable reports whether the session can still mint access tokens
func (s *Session) IsUsable(at time.Time) bool {
	return !s.Revoked && s.ExpiresAt.After(at)
}
