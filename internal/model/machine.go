package model

import (
	"time"
)

// Machine is a piece of production equipment on the factory floor.
// Status always holds one of the canonical MachineStatus strings.
type Machine struct {
	ID                  uint          `gorm:"primaryKey"`
	Name                string        `gorm:"size:100;not null;index"`
	Type                string        `gorm:"size:100;not null"`
	Status              MachineStatus `gorm:"type:varchar(20);not null;default:'Operational'"`
	LastMaintenanceDate time.Time
	ImagePath           *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Logs []MachineLog `gorm:"foreignKey:MachineID"`
}

// MachineLog is an immutable audit row: one entry per status change or
// reported issue. Rows are NEVER updated or deleted.
type MachineLog struct {
	ID        uint      `gorm:"primaryKey"`
	MachineID uint      `gorm:"index;not null"`
	Timestamp time.Time `gorm:"not null"`
	Action    string    `gorm:"not null"`
	UserID    uint      `gorm:"not null"`

	User *User `gorm:"foreignKey:UserID"`
}
