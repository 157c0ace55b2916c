package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/repository"
	"github.com/tenantkit/backend/pkg/validator"
)

// SocialLinkService manages a tenant's social profile links. The whole
// surface, reads included, is restricted to tenant admins and above; the
// platform is derived from the URL host, never supplied by the client.
type SocialLinkService struct {
	socialRepo repository.SocialLinkRepository
	validate   *validator.Validator
	logger     *zap.Logger
}

func NewSocialLinkService(
	socialRepo repository.SocialLinkRepository,
	validate *validator.Validator,
	logger *zap.Logger,
) *SocialLinkService {
	return &SocialLinkService{
		socialRepo: socialRepo,
		validate:   validate,
		logger:     logger,
	}
}

type CreateSocialLinkRequest struct {
	URL string `json:"url" validate:"required,url,max=2048"`
}

func (s *SocialLinkService) Create(ctx context.Context, scope *domain.Scope, req CreateSocialLinkRequest) (*domain.SocialLink, error) {
	if err := requireAdmin(scope); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, err
	}

	link := &domain.SocialLink{
		ID:       uuid.New(),
		TenantID: tenantID,
		URL:      req.URL,
		Platform: domain.DetectPlatform(req.URL),
	}

	if err := s.socialRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *SocialLinkService) Get(ctx context.Context, scope *domain.Scope, id uuid.UUID) (*domain.SocialLink, error) {
	if err := requireAdmin(scope); err != nil {
		return nil, err
	}
	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, err
	}
	return s.socialRepo.GetByID(ctx, tenantID, id)
}

func (s *SocialLinkService) List(ctx context.Context, scope *domain.Scope) ([]*domain.SocialLink, error) {
	if err := requireAdmin(scope); err != nil {
		return nil, err
	}
	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, err
	}
	return s.socialRepo.List(ctx, tenantID)
}

func (s *SocialLinkService) Delete(ctx context.Context, scope *domain.Scope, id uuid.UUID) error {
	if err := requireAdmin(scope); err != nil {
		return err
	}
	tenantID, err := scope.TenantID()
	if err != nil {
		return err
	}
	return s.socialRepo.Delete(ctx, tenantID, id)
}

func requireAdmin(scope *domain.Scope) error {
	if !scope.User.Role.AtLeast(domain.RoleTenantAdmin) {
		return domain.ErrInsufficientRole
	}
	return nil
}
