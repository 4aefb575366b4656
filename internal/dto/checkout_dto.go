package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Cart ────────────────────────────────────────────────────────────────────

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required,gt=0"`
	Quantity  int  `json:"quantity"   validate:"required,gt=0"`
}

type CartResponse struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type CartLine struct {
	ProductID   uint            `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ─── Checkout ────────────────────────────────────────────────────────────────

// CheckoutResponse carries the provider's hosted-page redirect target and the
// order rows created before the payment session was requested.
type CheckoutResponse struct {
	RedirectURL string `json:"redirectUrl"`
	OrderIDs    []uint `json:"orderIds"`
}
