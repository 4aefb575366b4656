package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"optiops/internal/apierror"
	"optiops/internal/config"
	"optiops/internal/dto"
	"optiops/internal/infra"
	"optiops/internal/model"
	"optiops/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PaymentProvider is the slice of infra.PaymentClient the orchestrator needs.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req infra.CheckoutSessionRequest) (*infra.CheckoutSession, error)
}

type CheckoutService interface {
	// Checkout turns the selected cart lines into CustomerOrder rows and
	// requests a hosted payment session. productIDs is the raw
	// comma-separated form value.
	Checkout(ctx context.Context, userID uint, productIDs string) (*dto.CheckoutResponse, error)

	GetCart(ctx context.Context, userID uint) (*dto.CartResponse, error)
	AddToCart(ctx context.Context, userID uint, req dto.AddCartItemRequest) (*dto.CartResponse, error)
	RemoveFromCart(ctx context.Context, userID uint, productID uint) (*dto.CartResponse, error)
	ClearCart(ctx context.Context, userID uint) error
}

type checkoutService struct {
	cfg      *config.Config
	cart     repository.CartStore
	orders   repository.CustomerOrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	provider PaymentProvider
}

func NewCheckoutService(
	cfg *config.Config,
	cart repository.CartStore,
	orders repository.CustomerOrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	provider PaymentProvider,
) CheckoutService {
	return &checkoutService{
		cfg:      cfg,
		cart:     cart,
		orders:   orders,
		products: products,
		users:    users,
		provider: provider,
	}
}

// parseProductIDs splits the comma-separated form value, keeping only
// positive integers.
func parseProductIDs(raw string) []uint {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			continue
		}
		ids = append(ids, uint(n))
	}
	return ids
}

func (s *checkoutService) Checkout(ctx context.Context, userID uint, productIDs string) (*dto.CheckoutResponse, error) {
	selected := parseProductIDs(productIDs)
	if len(selected) == 0 {
		return nil, apierror.Validation("No products selected for checkout.")
	}
	selectedSet := make(map[uint]bool, len(selected))
	for _, id := range selected {
		selectedSet[id] = true
	}

	cartItems, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, apierror.CheckoutFailed("Payment processing error: %s", err.Error())
	}
	if len(cartItems) == 0 {
		return nil, apierror.Validation("Your cart is empty.")
	}

	var lines []model.CartItem
	for _, item := range cartItems {
		if selectedSet[item.ProductID] {
			lines = append(lines, item)
		}
	}
	if len(lines) == 0 {
		return nil, apierror.Validation("No valid products found in your selection.")
	}

	// Each order is persisted immediately so its generated id can be carried
	// in the success callback.
	orderIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		order := &model.CustomerOrder{
			ProductID:   line.ProductID,
			UserID:      userID,
			Quantity:    line.Quantity,
			TotalAmount: line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
			OrderDate:   time.Now(),
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return nil, apierror.CheckoutFailed("Payment processing error: %s", err.Error())
		}
		orderIDs = append(orderIDs, order.ID)
	}

	// One provider line per cart entry. Quantity is folded into the unit
	// amount (minor currency units, truncated), so the line quantity is 1.
	lineItems := make([]infra.CheckoutLineItem, 0, len(lines))
	for _, line := range lines {
		amount := line.Price.
			Mul(decimal.NewFromInt(int64(line.Quantity))).
			Mul(decimal.NewFromInt(100)).
			IntPart()
		lineItems = append(lineItems, infra.CheckoutLineItem{
			Name:        line.ProductName,
			Description: fmt.Sprintf("Quantity: %d", line.Quantity),
			UnitAmount:  amount,
			Currency:    s.cfg.PaymentCurrency,
			Quantity:    1,
		})
	}

	var email string
	if user, err := s.users.FindByID(ctx, userID); err == nil {
		email = user.Email
	}

	idParams := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		idParams[i] = strconv.FormatUint(uint64(id), 10)
	}
	successURL := fmt.Sprintf("%s/payment/success?orderIds=%s&session_id={CHECKOUT_SESSION_ID}",
		s.cfg.Domain, strings.Join(idParams, ","))
	cancelURL := s.cfg.Domain + "/cart"

	session, err := s.provider.CreateCheckoutSession(ctx, infra.CheckoutSessionRequest{
		LineItems:     lineItems,
		Mode:          "payment",
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
		CustomerEmail: email,
	})
	if err != nil {
		return nil, apierror.CheckoutFailed("Payment processing error: %s", err.Error())
	}

	log.Info().
		Uint("user_id", userID).
		Uints("order_ids", orderIDs).
		Str("session_id", session.ID).
		Msg("checkout session created")

	return &dto.CheckoutResponse{RedirectURL: session.URL, OrderIDs: orderIDs}, nil
}

// ── Cart ─────────────────────────────────────────────────────────────────────

func cartToResponse(items []model.CartItem) *dto.CartResponse {
	resp := &dto.CartResponse{Items: make([]dto.CartLine, len(items)), Total: decimal.Zero}
	for i, item := range items {
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		resp.Items[i] = dto.CartLine{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Subtotal:    subtotal,
		}
		resp.Total = resp.Total.Add(subtotal)
	}
	return resp
}

func (s *checkoutService) GetCart(ctx context.Context, userID uint) (*dto.CartResponse, error) {
	items, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cartToResponse(items), nil
}

func (s *checkoutService) AddToCart(ctx context.Context, userID uint, req dto.AddCartItemRequest) (*dto.CartResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, apierror.NotFound("Product not found.")
	}

	items, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == req.ProductID {
			items[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, model.CartItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    req.Quantity,
		})
	}

	if err := s.cart.Save(ctx, userID, items); err != nil {
		return nil, err
	}
	return cartToResponse(items), nil
}

func (s *checkoutService) RemoveFromCart(ctx context.Context, userID uint, productID uint) (*dto.CartResponse, error) {
	items, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := s.cart.Save(ctx, userID, kept); err != nil {
		return nil, err
	}
	return cartToResponse(kept), nil
}

func (s *checkoutService) ClearCart(ctx context.Context, userID uint) error {
	return s.cart.Clear(ctx, userID)
}
