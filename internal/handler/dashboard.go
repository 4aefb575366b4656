package handler

import (
	"net/http"
	"time"

	"optiops/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc   service.DashboardService
	users service.UserService
}

func NewDashboardHandler(svc service.DashboardService, users service.UserService) *DashboardHandler {
	return &DashboardHandler{svc: svc, users: users}
}

// Summary godoc
// @Summary Full admin dashboard report
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardSummary
// @Failure 500 {object} apierror.Envelope
// @Router /v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.svc.BuildSummary(c.Request.Context(), time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Users returns the directory listing used by the user-management table.
func (h *DashboardHandler) Users(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UserStats returns the user-management stat cards.
func (h *DashboardHandler) UserStats(c *gin.Context) {
	stats, err := h.svc.UserStats(c.Request.Context(), time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
