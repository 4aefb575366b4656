package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:100;not null;index"`
	Description *string
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImagePath   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
