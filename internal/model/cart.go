package model

import (
	"github.com/shopspring/decimal"
)

// CartItem is one line of a user's session-scoped cart. Carts live in Redis
// keyed by user id, not in the relational store — they only become durable
// as CustomerOrder rows at checkout.
type CartItem struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}
