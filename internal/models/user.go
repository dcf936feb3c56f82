package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// SystemProvider/SystemUID identify the placeholder user that absorbs
// records orphaned by account deletion.
const (
	SystemProvider = "system"
	SystemUID      = "deleted_user"
)

type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Provider  string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_identity"`
	UID       string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_identity"`
	Email     string  `gorm:"index"`
	Name      string  `gorm:"type:varchar(100)"`
	Password  string  // bcrypt hash; empty for external-auth users
	SlackID   string  `gorm:"type:varchar(50)"`
	Currency  float64 `gorm:"type:decimal(20,2);not null;default:0"`
	Role      Role    `gorm:"type:varchar(20);not null;default:'user'"`
	Version   int     `gorm:"default:1"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSystem reports whether this row is the deleted-user placeholder.
func (u *User) IsSystem() bool {
	return u.Provider == SystemProvider && u.UID == SystemUID
}

// DisplayName falls back to email when no name was provided by the auth
// provider.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "User"
}
