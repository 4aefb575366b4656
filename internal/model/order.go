package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionOrder status values.
const (
	OrderPending    = "Pending"
	OrderInProgress = "In Progress"
	OrderCompleted  = "Completed"
)

// CustomerOrder is created at checkout time, before payment confirmation,
// and is immutable afterwards. TotalAmount = quantity x unit price.
type CustomerOrder struct {
	ID          uint            `gorm:"primaryKey"`
	ProductID   uint            `gorm:"index;not null"`
	UserID      uint            `gorm:"index;not null"`
	Quantity    int             `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OrderDate   time.Time       `gorm:"index;not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
	User    *User    `gorm:"foreignKey:UserID"`
}

// ProductionOrder tracks factory work items.
// Status: "Pending" | "In Progress" | "Completed"
type ProductionOrder struct {
	ID        uint   `gorm:"primaryKey"`
	Status    string `gorm:"type:varchar(20);not null;default:'Pending'"`
	UserID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
}
