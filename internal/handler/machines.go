package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"optiops/internal/dto"
	"optiops/internal/middleware"
	"optiops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Machine-detail snapshots change only when someone touches the machine, so a
// short cache keeps the detail modal cheap to reopen.
const machineDetailTTL = 1 * time.Minute

type MachinesHandler struct {
	svc service.MachineService
	rdb *redis.Client
}

func NewMachinesHandler(svc service.MachineService, rdb *redis.Client) *MachinesHandler {
	return &MachinesHandler{svc: svc, rdb: rdb}
}

func (h *MachinesHandler) List(c *gin.Context) {
	machines, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, machines)
}

// UpdateStatus godoc
// @Summary Update a machine's status
// @Tags machines
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param id path int true "Machine id"
// @Param status formData string true "Raw status text"
// @Success 200 {object} dto.UpdateStatusResponse
// @Failure 400 {object} apierror.Envelope
// @Router /v1/machines/{id}/status [post]
func (h *MachinesHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if !bindFormAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	status, err := h.svc.SetStatus(c.Request.Context(), id, req.Status, claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	h.invalidateDetails(c.Request.Context(), id)
	c.JSON(http.StatusOK, dto.UpdateStatusResponse{
		Success: true,
		Message: fmt.Sprintf("Machine status updated to %s successfully", status),
		Status:  status.String(),
	})
}

func (h *MachinesHandler) LogIssue(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.LogIssueRequest
	if !bindFormAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	forcedOffline, err := h.svc.ReportIssue(c.Request.Context(), id, req, claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	h.invalidateDetails(c.Request.Context(), id)
	c.JSON(http.StatusOK, dto.LogIssueResponse{
		Success:           true,
		Message:           "Issue logged successfully",
		ShouldMarkOffline: forcedOffline,
	})
}

func (h *MachinesHandler) GetDetails(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cacheKey := machineDetailKey(id)

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var details dto.MachineDetails
		if jsonErr := json.Unmarshal(cached, &details); jsonErr == nil {
			c.JSON(http.StatusOK, details)
			return
		}
	}

	details, err := h.svc.GetDetails(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}

	// Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(details); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, machineDetailTTL).Err()
	}

	c.JSON(http.StatusOK, details)
}

func (h *MachinesHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func machineDetailKey(id uint) string { return fmt.Sprintf("machine:details:%d", id) }

func (h *MachinesHandler) invalidateDetails(ctx context.Context, id uint) {
	_ = h.rdb.Del(ctx, machineDetailKey(id)).Err()
}
