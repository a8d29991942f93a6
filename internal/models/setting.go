package models

import (
	"gorm.io/gorm"
)

// Setting is a process-wide configuration value, keyed by name. Fee rates
// stored here take precedence over environment defaults.
type Setting struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;not null"`
	Value string `gorm:"not null"`
}
