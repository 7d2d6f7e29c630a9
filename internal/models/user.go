package models

import "time"

type UserRole string

const (
	RoleProjectManager UserRole = "project_manager"
	RoleChiefEditor    UserRole = "chief_editor"
	RoleTranslator     UserRole = "translator"
)

// Valid reports whether r is one of the roles a user can sign up with.
func (r UserRole) Valid() bool {
	switch r {
	case RoleProjectManager, RoleChiefEditor, RoleTranslator:
		return true
	}
	return false
}

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Login        string    `gorm:"uniqueIndex;size:100;not null" json:"login"`
	Username     string    `gorm:"size:100;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(32);index;not null" json:"role"`
	Status       string    `gorm:"size:255" json:"status"` // free-text availability note
	Efficiency   float64   `gorm:"not null;default:0" json:"efficiency"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRef is the id/username pair used in selection lists.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username}
}
