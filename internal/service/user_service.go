package service

import (
	"context"
	"time"

	"optiops/internal/apierror"
	"optiops/internal/dto"
	"optiops/internal/model"
	"optiops/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Get(ctx context.Context, id uint) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	// Delete removes the user row, or deactivates it instead when dependent
	// order rows exist. The returned flag reports that substitution.
	Delete(ctx context.Context, id uint) (softDeleted bool, err error)
	ResetPassword(ctx context.Context, id uint, newPassword string) error
	UsernameAvailable(ctx context.Context, username string, excludeID uint) (bool, error)
	EmailAvailable(ctx context.Context, email string, excludeID uint) (bool, error)
}

type userService struct {
	users            repository.UserRepository
	customerOrders   repository.CustomerOrderRepository
	productionOrders repository.ProductionOrderRepository
}

func NewUserService(
	users repository.UserRepository,
	customerOrders repository.CustomerOrderRepository,
	productionOrders repository.ProductionOrderRepository,
) UserService {
	return &userService{
		users:            users,
		customerOrders:   customerOrders,
		productionOrders: productionOrders,
	}
}

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		UserID:        u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Role:          u.Role,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		LastLoginDate: u.LastLoginDate,
	}
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = *userToResponse(&users[i])
	}
	return resp, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("User not found.")
	}
	return userToResponse(u), nil
}

// checkUniqueness enforces the username-then-email conflict order: the
// conflict message always names the first colliding field.
func (s *userService) checkUniqueness(ctx context.Context, username, email string, excludeID uint) error {
	taken, err := s.users.UsernameExists(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apierror.Conflict("Username is already taken.")
	}
	taken, err = s.users.EmailExists(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apierror.Conflict("Email is already in use.")
	}
	return nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := s.checkUniqueness(ctx, req.Username, req.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     isActive,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user created")
	return userToResponse(user), nil
}

func (s *userService) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("User not found.")
	}

	if err := s.checkUniqueness(ctx, req.Username, req.Email, id); err != nil {
		return nil, err
	}

	// An update that deactivates or demotes the sole active admin would
	// leave the system without one, same as deleting them.
	if user.Role == model.RoleAdmin && user.IsActive &&
		(req.Status != "Active" || req.Role != model.RoleAdmin) {
		admins, err := s.users.CountActiveAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, apierror.LastAdmin("Cannot deactivate the last admin user.")
		}
	}

	prevUsername, prevRole := user.Username, user.Role

	user.Username = req.Username
	user.Email = req.Email
	user.Role = req.Role
	user.IsActive = req.Status == "Active"

	if req.ResetPassword && req.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Info().
		Str("username", user.Username).Str("role", user.Role).
		Str("prev_username", prevUsername).Str("prev_role", prevRole).
		Msg("user updated")
	return userToResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id uint) (bool, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return false, apierror.NotFound("User not found.")
	}

	if user.Role == model.RoleAdmin {
		admins, err := s.users.CountActiveAdmins(ctx)
		if err != nil {
			return false, err
		}
		if admins <= 1 {
			return false, apierror.LastAdmin("Cannot delete the last admin user.")
		}
	}

	hasCustomerOrders, err := s.customerOrders.ExistsForUser(ctx, id)
	if err != nil {
		return false, err
	}
	hasProductionOrders, err := s.productionOrders.ExistsForUser(ctx, id)
	if err != nil {
		return false, err
	}

	if hasCustomerOrders || hasProductionOrders {
		// Referential integrity with existing orders: deactivate, don't drop.
		if err := s.users.SoftDelete(ctx, id); err != nil {
			return false, err
		}
		log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user deactivated (has orders)")
		return true, nil
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return false, err
	}
	log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user deleted")
	return false, nil
}

func (s *userService) ResetPassword(ctx context.Context, id uint, newPassword string) error {
	if newPassword == "" {
		return apierror.Validation("Password cannot be empty")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("User not found.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	log.Info().Str("username", user.Username).Str("role", user.Role).Msg("password reset")
	return nil
}

func (s *userService) UsernameAvailable(ctx context.Context, username string, excludeID uint) (bool, error) {
	taken, err := s.users.UsernameExists(ctx, username, excludeID)
	return !taken, err
}

func (s *userService) EmailAvailable(ctx context.Context, email string, excludeID uint) (bool, error) {
	taken, err := s.users.EmailExists(ctx, email, excludeID)
	return !taken, err
}
