package database

import (
	"gorm.io/gorm"
)

// User is the single persisted entity. Passwords are stored verbatim;
// there is no hashing anywhere in the credential flow.
type User struct {
	gorm.Model `json:"-"`

	UserID   string `json:"id" gorm:"uniqueIndex;not null"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Email    string `json:"email"`

	// Avatar is written by the settings flow, AvatarURL by the profile
	// flow. Both hold a /uploads/<filename> path.
	Avatar    string `json:"avatar"`
	AvatarURL string `json:"avatar_url"`
}
