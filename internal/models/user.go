package models

import (
	"time"
)

// User is an API account keyed by wallet address; the address doubles as
// the caller identity handed to the engine.
type User struct {
	Address   string `gorm:"primaryKey;size:42"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
