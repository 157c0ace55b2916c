package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/repository"
	"github.com/tenantkit/backend/pkg/email"
	"github.com/tenantkit/backend/pkg/hash"
	"github.com/tenantkit/backend/pkg/validator"
)

// UserService manages users inside the caller's tenant scope. Superadmin
// accounts are never created through this service; they are provisioned out
// of band.
type UserService struct {
	userRepo          repository.UserRepository
	tenantRepo        repository.TenantRepository
	emailSender       email.Sender
	validate          *validator.Validator
	passwordMinLength int
	logger            *zap.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	emailSender email.Sender,
	validate *validator.Validator,
	passwordMinLength int,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:          userRepo,
		tenantRepo:        tenantRepo,
		emailSender:       emailSender,
		validate:          validate,
		passwordMinLength: passwordMinLength,
		logger:            logger,
	}
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=user tenant_admin"`
}

type UpdateUserRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=255"`
	Role *string `json:"role" validate:"omitempty,oneof=user tenant_admin"`
}

func (s *UserService) Create(ctx context.Context, scope *domain.Scope, req CreateUserRequest) (*domain.User, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if err := hash.ValidatePasswordStrength(req.Password, s.passwordMinLength); err != nil {
		return nil, err
	}

	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, err
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     &tenantID,
		Email:        req.Email,
		Name:         req.Name,
		Role:         domain.Role(req.Role),
		PasswordHash: passwordHash,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.sendWelcomeEmail(ctx, user, tenantID)

	return user, nil
}

func (s *UserService) Get(ctx context.Context, scope *domain.Scope, id uuid.UUID) (*domain.User, error) {
	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByIDInTenant(ctx, tenantID, id)
}

func (s *UserService) List(ctx context.Context, scope *domain.Scope, limit, offset int) ([]*domain.User, int, error) {
	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, 0, err
	}
	return s.userRepo.List(ctx, tenantID, limit, offset)
}

func (s *UserService) Update(ctx context.Context, scope *domain.Scope, id uuid.UUID, req UpdateUserRequest) (*domain.User, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByIDInTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = domain.Role(*req.Role)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, scope *domain.Scope, id uuid.UUID) error {
	tenantID, err := scope.TenantID()
	if err != nil {
		return err
	}

	// Admins cannot delete their own account through this endpoint.
	if scope.User.ID == id {
		return fmt.Errorf("%w: cannot delete your own account", domain.ErrValidation)
	}

	return s.userRepo.DeleteInTenant(ctx, tenantID, id)
}

// sendWelcomeEmail is best-effort: a mail provider outage must not fail user
// creation.
func (s *UserService) sendWelcomeEmail(ctx context.Context, user *domain.User, tenantID uuid.UUID) {
	if s.emailSender == nil {
		return
	}

	tenantName := ""
	if tenant, err := s.tenantRepo.GetByID(ctx, tenantID); err == nil {
		tenantName = tenant.Name
	}

	if err := s.emailSender.SendWelcomeEmail(user.Email, user.Name, tenantName); err != nil {
		s.logger.Warn("failed to send welcome email",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
}
