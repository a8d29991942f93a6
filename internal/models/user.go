package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleClient = "client"
	RoleWorker = "worker"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model
	Email           string  `gorm:"uniqueIndex;not null"`
	Password        string  `gorm:"not null" json:"-"`
	Name            string  `gorm:"not null"`
	Role            string  `gorm:"default:'client'"`
	HourlyRate      float64 `gorm:"default:0"` // workers only
	StripeAccountID string  // connected account for transfers
	Status          string  `gorm:"default:'active'"`
	TokenVersion    int     `gorm:"default:1"`
}

// IsWorker reports whether the user can be assigned to tasks.
func (u *User) IsWorker() bool {
	return u.Role == RoleWorker
}
