package handler

import (
	"net/http"

	"optiops/internal/apierror"
	"optiops/internal/dto"
	"optiops/internal/middleware"
	"optiops/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct{ svc service.CheckoutService }

func NewCheckoutHandler(svc service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// CreateSession godoc
// @Summary Create a hosted checkout session for selected cart items
// @Tags payment
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param productIds formData string true "Comma-separated product ids"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} apierror.Envelope
// @Failure 502 {object} apierror.Envelope
// @Router /v1/checkout [post]
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Checkout(c.Request.Context(), claims.UserID, c.PostForm("productIds"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) GetCart(c *gin.Context) {
	claims := middleware.GetClaims(c)
	cart, err := h.svc.GetCart(c.Request.Context(), claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CheckoutHandler) AddToCart(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	cart, err := h.svc.AddToCart(c.Request.Context(), claims.UserID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CheckoutHandler) RemoveFromCart(c *gin.Context) {
	id, ok := idParam(c, "productId")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)

	cart, err := h.svc.RemoveFromCart(c.Request.Context(), claims.UserID, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CheckoutHandler) ClearCart(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.ClearCart(c.Request.Context(), claims.UserID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("Cart cleared."))
}
