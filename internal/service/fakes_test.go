package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tenantkit/backend/internal/domain"
)

// In-memory repository fakes mirroring the persistence semantics the
// services rely on: tenant filters, uniqueness conflicts and the
// compare-and-set status transition.

type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTenantRepo struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*domain.Tenant
	users   *fakeUserRepo
	docs    *fakeDocumentRepo
}

func newFakeTenantRepo(users *fakeUserRepo, docs *fakeDocumentRepo) *fakeTenantRepo {
	return &fakeTenantRepo{
		tenants: map[uuid.UUID]*domain.Tenant{},
		users:   users,
		docs:    docs,
	}
}

func (r *fakeTenantRepo) Create(_ context.Context, tenant *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.Slug == tenant.Slug {
			return domain.ErrConflict
		}
	}
	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now
	copied := *tenant
	r.tenants[tenant.ID] = &copied
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenant, ok := r.tenants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *tenant
	return &copied, nil
}

func (r *fakeTenantRepo) GetBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tenant := range r.tenants {
		if tenant.Slug == slug {
			copied := *tenant
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeTenantRepo) List(_ context.Context, limit, offset int) ([]*domain.Tenant, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Tenant, 0, len(r.tenants))
	for _, tenant := range r.tenants {
		copied := *tenant
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), len(all), nil
}

func (r *fakeTenantRepo) Update(_ context.Context, tenant *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tenants[tenant.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, t := range r.tenants {
		if id != tenant.ID && t.Slug == tenant.Slug {
			return domain.ErrConflict
		}
	}
	copied := *tenant
	r.tenants[tenant.ID] = &copied
	return nil
}

func (r *fakeTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	if _, ok := r.tenants[id]; !ok {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(r.tenants, id)
	r.mu.Unlock()

	// Cascade like the database does.
	if r.users != nil {
		r.users.deleteByTenant(id)
	}
	if r.docs != nil {
		r.docs.deleteByTenant(id)
	}
	return nil
}

func (r *fakeTenantRepo) Stats(_ context.Context, id uuid.UUID) (*domain.TenantStats, error) {
	stats := &domain.TenantStats{}
	if r.users != nil {
		stats.UserCount = r.users.countByTenant(id)
	}
	if r.docs != nil {
		stats.DocumentCount = r.docs.countByTenant(id)
	}
	return stats, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email && sameTenant(u.TenantID, user.TenantID) {
			return domain.ErrConflict
		}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByEmail mirrors the login lookup: the superadmin (no tenant) row wins,
// otherwise the newest match.
func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *domain.User
	for _, user := range r.users {
		if user.Email != email {
			continue
		}
		switch {
		case best == nil:
			best = user
		case user.TenantID == nil && best.TenantID != nil:
			best = user
		case (user.TenantID == nil) == (best.TenantID == nil) && user.CreatedAt.After(best.CreatedAt):
			best = user
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	copied := *best
	return &copied, nil
}

func (r *fakeUserRepo) GetByIDInTenant(_ context.Context, tenantID, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok || user.TenantID == nil || *user.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) List(_ context.Context, tenantID uuid.UUID, limit, offset int) ([]*domain.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []*domain.User{}
	for _, user := range r.users {
		if user.TenantID != nil && *user.TenantID == tenantID {
			copied := *user
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, limit, offset), len(matched), nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) DeleteInTenant(_ context.Context, tenantID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok || user.TenantID == nil || *user.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	user.LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) countByTenant(tenantID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, user := range r.users {
		if user.TenantID != nil && *user.TenantID == tenantID {
			count++
		}
	}
	return count
}

func (r *fakeUserRepo) deleteByTenant(tenantID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, user := range r.users {
		if user.TenantID != nil && *user.TenantID == tenantID {
			delete(r.users, id)
		}
	}
}

type fakeDocumentRepo struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*domain.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[uuid.UUID]*domain.Document{}}
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocumentRepo) List(_ context.Context, tenantID uuid.UUID, limit, offset int) ([]*domain.Document, int, error) {
	return r.list(func(doc *domain.Document) bool {
		return doc.TenantID == tenantID
	}, limit, offset)
}

func (r *fakeDocumentRepo) ListByUser(_ context.Context, tenantID, userID uuid.UUID, limit, offset int) ([]*domain.Document, int, error) {
	return r.list(func(doc *domain.Document) bool {
		return doc.TenantID == tenantID && doc.UserID == userID
	}, limit, offset)
}

func (r *fakeDocumentRepo) list(match func(*domain.Document) bool, limit, offset int) ([]*domain.Document, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []*domain.Document{}
	for _, doc := range r.docs {
		if match(doc) {
			copied := *doc
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, limit, offset), len(matched), nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepo) TransitionStatus(_ context.Context, tenantID, id uuid.UUID, from, to domain.DocumentStatus, errDetail *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.TenantID != tenantID {
		return domain.ErrNotFound
	}
	if doc.Status != from {
		return domain.ErrInvalidTransition
	}

	doc.Status = to
	doc.UpdatedAt = time.Now().UTC()
	if to == domain.DocumentStatusProcessed {
		now := time.Now().UTC()
		doc.ProcessedAt = &now
	}
	if to == domain.DocumentStatusError {
		doc.ErrorDetail = errDetail
	} else {
		doc.ErrorDetail = nil
	}
	return nil
}

func (r *fakeDocumentRepo) countByTenant(tenantID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, doc := range r.docs {
		if doc.TenantID == tenantID {
			count++
		}
	}
	return count
}

func (r *fakeDocumentRepo) deleteByTenant(tenantID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, doc := range r.docs {
		if doc.TenantID == tenantID {
			delete(r.docs, id)
		}
	}
}

type fakeSocialRepo struct {
	mu    sync.Mutex
	links map[uuid.UUID]*domain.SocialLink
}

func newFakeSocialRepo() *fakeSocialRepo {
	return &fakeSocialRepo{links: map[uuid.UUID]*domain.SocialLink{}}
}

func (r *fakeSocialRepo) Create(_ context.Context, link *domain.SocialLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now
	copied := *link
	r.links[link.ID] = &copied
	return nil
}

func (r *fakeSocialRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.SocialLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.links[id]
	if !ok || link.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	copied := *link
	return &copied, nil
}

func (r *fakeSocialRepo) List(_ context.Context, tenantID uuid.UUID) ([]*domain.SocialLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []*domain.SocialLink{}
	for _, link := range r.links {
		if link.TenantID == tenantID {
			copied := *link
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

func (r *fakeSocialRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.links[id]
	if !ok || link.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.links, id)
	return nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.ChatSession
	messages map[uuid.UUID][]*domain.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		sessions: map[uuid.UUID]*domain.ChatSession{},
		messages: map[uuid.UUID][]*domain.ChatMessage{},
	}
}

func (r *fakeChatRepo) CreateSession(_ context.Context, session *domain.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeChatRepo) GetSession(_ context.Context, userID, sessionID uuid.UUID) (*domain.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, domain.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeChatRepo) ListSessions(_ context.Context, userID uuid.UUID, limit, offset int) ([]*domain.ChatSession, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []*domain.ChatSession{}
	for _, session := range r.sessions {
		if session.UserID == userID {
			copied := *session
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].UpdatedAt.After(matched[j].UpdatedAt) })
	return paginate(matched, limit, offset), len(matched), nil
}

func (r *fakeChatRepo) DeleteSession(_ context.Context, userID, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok || session.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.sessions, sessionID)
	delete(r.messages, sessionID)
	return nil
}

func (r *fakeChatRepo) CreateMessage(_ context.Context, msg *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.CreatedAt = time.Now().UTC()
	copied := *msg
	r.messages[msg.SessionID] = append(r.messages[msg.SessionID], &copied)
	if session, ok := r.sessions[msg.SessionID]; ok {
		session.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (r *fakeChatRepo) ListMessages(_ context.Context, sessionID uuid.UUID, limit, offset int) ([]*domain.ChatMessage, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.messages[sessionID]
	copies := make([]*domain.ChatMessage, len(all))
	for i, msg := range all {
		copied := *msg
		copies[i] = &copied
	}
	return paginate(copies, limit, offset), len(copies), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func sameTenant(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
