package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// Admin is a dashboard credential record. Accounts are created out-of-band;
// IsActive=false excludes an account from authentication without deleting it.
type Admin struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string     `gorm:"size:30;not null;uniqueIndex" json:"username"`
	Password  string     `gorm:"not null" json:"-"`
	Email     string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Role      string     `gorm:"size:20;not null;default:'admin'" json:"role"`
	IsActive  bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func (Admin) TableName() string {
	return "admins"
}
