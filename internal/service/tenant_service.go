package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/repository"
	"github.com/tenantkit/backend/pkg/hash"
	"github.com/tenantkit/backend/pkg/validator"
)

// TenantService handles tenant provisioning and lifecycle. All operations
// here are superadmin-only; the role gate lives in the route table.
type TenantService struct {
	tenantRepo        repository.TenantRepository
	userRepo          repository.UserRepository
	txManager         repository.TxManager
	validate          *validator.Validator
	passwordMinLength int
	logger            *zap.Logger
}

func NewTenantService(
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	txManager repository.TxManager,
	validate *validator.Validator,
	passwordMinLength int,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo:        tenantRepo,
		userRepo:          userRepo,
		txManager:         txManager,
		validate:          validate,
		passwordMinLength: passwordMinLength,
		logger:            logger,
	}
}

type CreateTenantRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=255"`
	Slug          string `json:"slug" validate:"required,min=2,max=100,slug"`
	AdminName     string `json:"admin_name" validate:"required,min=2,max=255"`
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	AdminPassword string `json:"admin_password" validate:"required"`
}

type UpdateTenantRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=255"`
	Slug *string `json:"slug" validate:"omitempty,min=2,max=100,slug"`
}

// TenantDetail is a tenant together with its usage counters.
type TenantDetail struct {
	*domain.Tenant
	Stats *domain.TenantStats `json:"stats"`
}

// Create provisions a tenant and its first tenant_admin in one transaction:
// either both rows exist afterwards or neither does.
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*domain.Tenant, *domain.User, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, nil, err
	}
	if err := hash.ValidatePasswordStrength(req.AdminPassword, s.passwordMinLength); err != nil {
		return nil, nil, err
	}

	passwordHash, err := hash.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tenant := &domain.Tenant{
		ID:   uuid.New(),
		Name: req.Name,
		Slug: req.Slug,
	}
	admin := &domain.User{
		ID:           uuid.New(),
		TenantID:     &tenant.ID,
		Email:        req.AdminEmail,
		Name:         req.AdminName,
		Role:         domain.RoleTenantAdmin,
		PasswordHash: passwordHash,
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tenantRepo.Create(ctx, tenant); err != nil {
			return err
		}
		return s.userRepo.Create(ctx, admin)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("slug", tenant.Slug),
		zap.String("admin_id", admin.ID.String()))

	return tenant, admin, nil
}

func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*TenantDetail, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.tenantRepo.Stats(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TenantDetail{Tenant: tenant, Stats: stats}, nil
}

func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return s.tenantRepo.GetBySlug(ctx, slug)
}

func (s *TenantService) List(ctx context.Context, limit, offset int) ([]*domain.Tenant, int, error) {
	return s.tenantRepo.List(ctx, limit, offset)
}

func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*domain.Tenant, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Slug != nil {
		tenant.Slug = *req.Slug
	}
	tenant.UpdatedAt = time.Now().UTC()

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// Delete removes the tenant; users, documents and social links cascade at
// the database level.
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("tenant deleted", zap.String("tenant_id", id.String()))
	return nil
}
