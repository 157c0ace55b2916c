package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/pkg/validator"
)

type socialFixture struct {
	service *SocialLinkService
	adminA  *domain.User
	adminB  *domain.User
	userA   *domain.User
}

func newSocialFixture(t *testing.T) *socialFixture {
	t.Helper()

	tenantA := uuid.New()
	tenantB := uuid.New()
	return &socialFixture{
		service: NewSocialLinkService(newFakeSocialRepo(), validator.NewValidator(), zap.NewNop()),
		adminA:  &domain.User{ID: uuid.New(), TenantID: &tenantA, Email: "admin@a.example", Role: domain.RoleTenantAdmin},
		adminB:  &domain.User{ID: uuid.New(), TenantID: &tenantB, Email: "admin@b.example", Role: domain.RoleTenantAdmin},
		userA:   &domain.User{ID: uuid.New(), TenantID: &tenantA, Email: "user@a.example", Role: domain.RoleUser},
	}
}

func TestCreateSocialLinkDetectsPlatform(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()
	scope := scopeFor(t, f.adminA, nil)

	link, err := f.service.Create(ctx, scope, CreateSocialLinkRequest{URL: "https://x.com/acme"})
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformTwitter, link.Platform)

	other, err := f.service.Create(ctx, scope, CreateSocialLinkRequest{URL: "https://example.com/acme"})
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformOther, other.Platform)
}

func TestSocialLinksRequireAdminRole(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()

	link, err := f.service.Create(ctx, scopeFor(t, f.adminA, nil), CreateSocialLinkRequest{URL: "https://x.com/acme"})
	require.NoError(t, err)

	// Plain users cannot touch the surface at all, reads included.
	userScope := scopeFor(t, f.userA, nil)

	_, err = f.service.List(ctx, userScope)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	_, err = f.service.Get(ctx, userScope, link.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	_, err = f.service.Create(ctx, userScope, CreateSocialLinkRequest{URL: "https://x.com/other"})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	err = f.service.Delete(ctx, userScope, link.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestCreateSocialLinkInvalidURL(t *testing.T) {
	f := newSocialFixture(t)

	_, err := f.service.Create(context.Background(), scopeFor(t, f.adminA, nil), CreateSocialLinkRequest{URL: "not a url"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSocialLinksAreTenantScoped(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()

	link, err := f.service.Create(ctx, scopeFor(t, f.adminA, nil), CreateSocialLinkRequest{URL: "https://linkedin.com/company/acme"})
	require.NoError(t, err)

	// Tenant B sees an empty list and cannot reach the link by id.
	links, err := f.service.List(ctx, scopeFor(t, f.adminB, nil))
	require.NoError(t, err)
	assert.Empty(t, links)

	_, err = f.service.Get(ctx, scopeFor(t, f.adminB, nil), link.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = f.service.Delete(ctx, scopeFor(t, f.adminB, nil), link.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The owner still sees it.
	links, err = f.service.List(ctx, scopeFor(t, f.adminA, nil))
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestDeleteSocialLink(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()
	scope := scopeFor(t, f.adminA, nil)

	link, err := f.service.Create(ctx, scope, CreateSocialLinkRequest{URL: "https://youtube.com/@acme"})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, scope, link.ID))

	links, err := f.service.List(ctx, scope)
	require.NoError(t, err)
	assert.Empty(t, links)
}
