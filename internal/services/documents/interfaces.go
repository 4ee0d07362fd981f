package documents

import (
	"context"
	"time"

	"github.com/simplereplay/replay/internal/models"
)

// Repository defines the interface for project document storage
type Repository interface {
	// Create inserts a new record; the id must be set
	Create(ctx context.Context, record *models.ProjectRecord) error

	// GetByID returns the record or a NOT_FOUND error
	GetByID(ctx context.Context, id string) (*models.ProjectRecord, error)

	// Merge applies the fields set in doc to the record with the given id,
	// inserting it when absent, and returns the stored result
	Merge(ctx context.Context, id string, doc *models.Document) (*models.ProjectRecord, error)

	// UpdatedAt returns the last modification time of a record
	UpdatedAt(ctx context.Context, id string) (time.Time, error)
}

// Service defines the document service business logic
type Service interface {
	// CreateDocument stores a new document under a fresh id
	CreateDocument(ctx context.Context, doc *models.Document) (*models.Document, error)

	// MergeDocument updates the fields present in doc, creating the document if needed
	MergeDocument(ctx context.Context, id string, doc *models.Document) (*models.Document, error)

	// GetDocument returns the full document
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// LastUpdated returns when the document last changed
	LastUpdated(ctx context.Context, id string) (time.Time, error)
}
