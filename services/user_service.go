package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"travelapp-backend/apperrors"
	"travelapp-backend/models"
	"travelapp-backend/policy"
	"travelapp-backend/repository"
	"travelapp-backend/utils"
)

type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	IsStaff   bool
	IsActive  *bool
}

type UserPatch struct {
	Username  *string
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Phone     *string
	IsStaff   *bool
	IsActive  *bool
}

// UserService is the administrators' user management.
type UserService struct {
	users      *repository.UserRepository
	bcryptCost int
	logger     *slog.Logger
}

func NewUserService(users *repository.UserRepository, bcryptCost int, logger *slog.Logger) *UserService {
	return &UserService{
		users:      users,
		bcryptCost: bcryptCost,
		logger:     resolveLogger(logger).With("module", "user", "layer", "service"),
	}
}

func (s *UserService) List(ctx context.Context, caller policy.Caller, opts repository.ListOptions) (repository.ListResult[models.User], error) {
	if err := policy.Authorize(caller, policy.OpList, policy.EntityUser, nil); err != nil {
		return repository.ListResult[models.User]{}, err
	}
	return s.users.List(ctx, opts)
}

func (s *UserService) Get(ctx context.Context, caller policy.Caller, id uint) (*models.User, error) {
	if err := policy.Authorize(caller, policy.OpRead, policy.EntityUser, nil); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, caller policy.Caller, in CreateUserInput) (*models.User, error) {
	if err := policy.Authorize(caller, policy.OpCreate, policy.EntityUser, nil); err != nil {
		return nil, err
	}
	user := &models.User{
		Username:  strings.TrimSpace(in.Username),
		Email:     strings.TrimSpace(in.Email),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		IsStaff:   in.IsStaff,
		IsActive:  boolOr(in.IsActive, true),
	}
	if in.Password == "" {
		return nil, apperrors.Validation("password", "This field is required.")
	}
	if err := s.setPassword(user, in.Password); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, user); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", "event", "user.create", "user_id", user.ID, "is_staff", user.IsStaff)
	return user, nil
}

func (s *UserService) Update(ctx context.Context, caller policy.Caller, id uint, patch UserPatch) (*models.User, error) {
	if err := policy.Authorize(caller, policy.OpUpdate, policy.EntityUser, nil); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Username != nil {
		user.Username = strings.TrimSpace(*patch.Username)
	}
	if patch.Email != nil {
		user.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.IsStaff != nil {
		user.IsStaff = *patch.IsStaff
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
	if patch.Password != nil {
		if err := s.setPassword(user, *patch.Password); err != nil {
			return nil, err
		}
	}
	if err := s.validate(ctx, user); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "event", "user.update", "user_id", user.ID)
	return user, nil
}

// Delete removes the user and everything they own. It reports false without an
// error when the user does not exist.
func (s *UserService) Delete(ctx context.Context, caller policy.Caller, id uint) (bool, error) {
	if err := policy.Authorize(caller, policy.OpDelete, policy.EntityUser, nil); err != nil {
		return false, err
	}
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("user deleted", "event", "user.delete", "user_id", id)
	}
	return deleted, nil
}

func (s *UserService) setPassword(user *models.User, password string) error {
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash
	return nil
}

func (s *UserService) validate(ctx context.Context, user *models.User) error {
	if user.Username == "" {
		return apperrors.Validation("username", "This field is required.")
	}
	if user.Phone != "" {
		if !utils.ValidatePhone(user.Phone) {
			return apperrors.Validation("phone", "Invalid phone number format")
		}
		user.Phone = utils.NormalizePhone(user.Phone)
	}
	taken, err := s.users.UsernameTaken(ctx, user.Username, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Validation("username", "A user with that username already exists.")
	}
	return nil
}
