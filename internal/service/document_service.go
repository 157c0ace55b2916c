package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/repository"
	"github.com/tenantkit/backend/pkg/validator"
)

// DocumentService tracks uploaded documents and drives their processing
// status machine. Plain users only see their own documents; tenant admins
// see the whole tenant.
type DocumentService struct {
	documentRepo repository.DocumentRepository
	validate     *validator.Validator
	logger       *zap.Logger
}

func NewDocumentService(
	documentRepo repository.DocumentRepository,
	validate *validator.Validator,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		validate:     validate,
		logger:       logger,
	}
}

type RegisterUploadRequest struct {
	OriginalName string `json:"original_name" validate:"required,max=512"`
	Size         int64  `json:"size" validate:"gte=0"`
	MimeType     string `json:"mime_type" validate:"required,max=255"`
}

type MarkErrorRequest struct {
	Detail string `json:"detail" validate:"required"`
}

// Register records a freshly uploaded document. The stored filename is
// derived from the document id so uploads can never collide or traverse
// paths regardless of what the client named the file.
func (s *DocumentService) Register(ctx context.Context, scope *domain.Scope, req RegisterUploadRequest) (*domain.Document, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	doc := &domain.Document{
		ID:           id,
		TenantID:     tenantID,
		UserID:       scope.User.ID,
		Filename:     storedFilename(id, req.OriginalName),
		OriginalName: req.OriginalName,
		Size:         req.Size,
		MimeType:     req.MimeType,
		Status:       domain.DocumentStatusUploaded,
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, scope *domain.Scope, id uuid.UUID) (*domain.Document, error) {
	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(scope, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, scope *domain.Scope, limit, offset int) ([]*domain.Document, int, error) {
	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, 0, err
	}

	if scope.CanReadTenantWide() {
		return s.documentRepo.List(ctx, tenantID, limit, offset)
	}
	return s.documentRepo.ListByUser(ctx, tenantID, scope.User.ID, limit, offset)
}

func (s *DocumentService) Delete(ctx context.Context, scope *domain.Scope, id uuid.UUID) error {
	tenantID, err := scope.TenantID()
	if err != nil {
		return err
	}

	doc, err := s.documentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(scope, doc); err != nil {
		return err
	}

	return s.documentRepo.Delete(ctx, tenantID, id)
}

// MarkProcessing moves uploaded -> processing.
func (s *DocumentService) MarkProcessing(ctx context.Context, scope *domain.Scope, id uuid.UUID) (*domain.Document, error) {
	return s.transition(ctx, scope, id, domain.DocumentStatusUploaded, domain.DocumentStatusProcessing, nil)
}

// MarkProcessed moves processing -> processed and stamps processed_at.
func (s *DocumentService) MarkProcessed(ctx context.Context, scope *domain.Scope, id uuid.UUID) (*domain.Document, error) {
	return s.transition(ctx, scope, id, domain.DocumentStatusProcessing, domain.DocumentStatusProcessed, nil)
}

// MarkError records a failure. Both uploaded and processing documents may
// fail, so the current status is read first and used as the compare value.
func (s *DocumentService) MarkError(ctx context.Context, scope *domain.Scope, id uuid.UUID, req MarkErrorRequest) (*domain.Document, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(scope, doc); err != nil {
		return nil, err
	}
	if !doc.Status.CanTransitionTo(domain.DocumentStatusError) {
		return nil, domain.ErrInvalidTransition
	}

	detail := req.Detail
	if err := s.documentRepo.TransitionStatus(ctx, tenantID, id, doc.Status, domain.DocumentStatusError, &detail); err != nil {
		return nil, err
	}
	return s.documentRepo.GetByID(ctx, tenantID, id)
}

// Reprocess is the only way out of the error status: it resets the document
// to uploaded so the pipeline can pick it up again.
func (s *DocumentService) Reprocess(ctx context.Context, scope *domain.Scope, id uuid.UUID) (*domain.Document, error) {
	return s.transition(ctx, scope, id, domain.DocumentStatusError, domain.DocumentStatusUploaded, nil)
}

func (s *DocumentService) transition(ctx context.Context, scope *domain.Scope, id uuid.UUID, from, to domain.DocumentStatus, detail *string) (*domain.Document, error) {
	tenantID, err := scope.TenantID()
	if err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(scope, doc); err != nil {
		return nil, err
	}

	if err := s.documentRepo.TransitionStatus(ctx, tenantID, id, from, to, detail); err != nil {
		return nil, err
	}

	s.logger.Info("document status changed",
		zap.String("document_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	return s.documentRepo.GetByID(ctx, tenantID, id)
}

// checkOwnership hides other users' documents from plain users even inside
// the same tenant.
func (s *DocumentService) checkOwnership(scope *domain.Scope, doc *domain.Document) error {
	if scope.CanReadTenantWide() {
		return nil
	}
	if doc.UserID != scope.User.ID {
		return domain.ErrTenantAccess
	}
	return nil
}

func storedFilename(id uuid.UUID, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s%s", id, ext)
}
