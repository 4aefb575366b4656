package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=Admin Worker Customer"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"is_active"`
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Role     string `json:"role"     validate:"required,oneof=Admin Worker Customer"`
	// Status: "Active" | "Inactive" — mirrors the admin form's toggle.
	Status        string `json:"status"         validate:"required,oneof=Active Inactive"`
	ResetPassword bool   `json:"reset_password"`
	NewPassword   string `json:"new_password"   validate:"omitempty,min=8"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	UserID        uint       `json:"userId"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLoginDate *time.Time `json:"lastLoginDate"`
}

// DeleteUserResponse reports whether the row was removed or only deactivated
// (soft delete preserves referential integrity with existing orders).
type DeleteUserResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	SoftDeleted bool   `json:"softDeleted"`
}

// UserStatsResponse mirrors the admin user-management stat cards.
// GrowthRate here is period-over-period (last 30 days vs the 30 before),
// distinct from the dashboard's share-of-total growth rate.
type UserStatsResponse struct {
	TotalUsers    int64   `json:"totalUsers"`
	AdminUsers    int64   `json:"adminUsers"`
	WorkerUsers   int64   `json:"workerUsers"`
	CustomerUsers int64   `json:"customerUsers"`
	NewUsers      int64   `json:"newUsers"`
	GrowthRate    float64 `json:"growthRate"`
}
