package handler

import (
	"net/http"

	"optiops/internal/apierror"
	"optiops/internal/dto"
	"optiops/internal/service"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct{ svc service.UserService }

func NewUsersHandler(svc service.UserService) *UsersHandler { return &UsersHandler{svc: svc} }

func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UsersHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Create godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateUserRequest true "New user"
// @Success 201 {object} apierror.Envelope
// @Failure 409 {object} apierror.Envelope
// @Router /v1/users [post]
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if _, err := h.svc.Create(c.Request.Context(), req); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.OK("User created successfully."))
}

func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("User updated successfully."))
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	softDeleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	msg := "User deleted successfully."
	if softDeleted {
		msg = "User has existing orders and was deactivated instead of deleted."
	}
	c.JSON(http.StatusOK, dto.DeleteUserResponse{Success: true, Message: msg, SoftDeleted: softDeleted})
}

func (h *UsersHandler) ResetPassword(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Envelope{Success: false, Message: "Invalid request body: " + err.Error()})
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("Password reset successfully"))
}

// CheckUsername reports availability: true when no other user holds the name.
func (h *UsersHandler) CheckUsername(c *gin.Context) {
	excludeID, _ := parseOptionalID(c.Query("userId"))
	available, err := h.svc.UsernameAvailable(c.Request.Context(), c.Query("username"), excludeID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, available)
}

func (h *UsersHandler) CheckEmail(c *gin.Context) {
	excludeID, _ := parseOptionalID(c.Query("userId"))
	available, err := h.svc.EmailAvailable(c.Request.Context(), c.Query("email"), excludeID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, available)
}
