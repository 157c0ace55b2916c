package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/repository"
)

const documentColumns = `id, tenant_id, user_id, filename, original_name, size, mime_type, status, error_detail, processed_at, created_at, updated_at`

type documentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository creates a new PostgreSQL document repository
func NewDocumentRepository(db *sqlx.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `
		INSERT INTO documents (id, tenant_id, user_id, filename, original_name, size, mime_type,
			status, error_detail, processed_at, created_at, updated_at)
		VALUES (:id, :tenant_id, :user_id, :filename, :original_name, :size, :mime_type,
			:status, :error_detail, :processed_at, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, doc); err != nil {
		return translate(err, "failed to create document")
	}
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND tenant_id = $2`

	var doc domain.Document
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &doc, query, id, tenantID); err != nil {
		return nil, translate(err, "failed to get document by id")
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*domain.Document, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM documents WHERE tenant_id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery, tenantID); err != nil {
		return nil, 0, translate(err, "failed to count documents")
	}

	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	docs := []*domain.Document{}
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &docs, query, tenantID, limit, offset); err != nil {
		return nil, 0, translate(err, "failed to list documents")
	}
	return docs, total, nil
}

func (r *documentRepository) ListByUser(ctx context.Context, tenantID, userID uuid.UUID, limit, offset int) ([]*domain.Document, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM documents WHERE tenant_id = $1 AND user_id = $2`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery, tenantID, userID); err != nil {
		return nil, 0, translate(err, "failed to count documents")
	}

	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	docs := []*domain.Document{}
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &docs, query, tenantID, userID, limit, offset); err != nil {
		return nil, 0, translate(err, "failed to list documents")
	}
	return docs, total, nil
}

func (r *documentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := ext(ctx, r.db).ExecContext(ctx,
		`DELETE FROM documents WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return translate(err, "failed to delete document")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TransitionStatus compares-and-sets the document status so two racing
// transitions cannot both win; only the one matching the current status
// succeeds.
func (r *documentRepository) TransitionStatus(ctx context.Context, tenantID, id uuid.UUID, from, to domain.DocumentStatus, errDetail *string) error {
	var processedAt *time.Time
	if to == domain.DocumentStatusProcessed {
		now := time.Now().UTC()
		processedAt = &now
	}
	if to != domain.DocumentStatusError {
		errDetail = nil
	}

	query := `
		UPDATE documents
		SET status = $1,
			error_detail = $2,
			processed_at = $3,
			updated_at = $4
		WHERE id = $5 AND tenant_id = $6 AND status = $7`

	result, err := ext(ctx, r.db).ExecContext(ctx, query,
		to, errDetail, processedAt, time.Now().UTC(), id, tenantID, from)
	if err != nil {
		return translate(err, "failed to transition document status")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err, "failed to get rows affected")
	}
	if rows > 0 {
		return nil
	}

	// Nothing matched: distinguish a missing document from one in the wrong
	// status.
	if _, err := r.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	return domain.ErrInvalidTransition
}
