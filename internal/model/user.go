package model

import (
	"time"
)

// Role values for User.Role.
const (
	RoleAdmin    = "Admin"
	RoleWorker   = "Worker"
	RoleCustomer = "Customer"
)

// User stores system accounts with role-based access.
// Role: "Admin" | "Worker" | "Customer"
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(50);not null"`
	// No column default on purpose: a default tag makes the ORM drop a
	// zero-value false from INSERTs, so the field is always written as given.
	IsActive  bool `gorm:"not null"`
	CreatedAt time.Time
	// LastLoginDate / LastLogoutDate track the most recent session boundaries.
	LastLoginDate  *time.Time
	LastLogoutDate *time.Time
}
