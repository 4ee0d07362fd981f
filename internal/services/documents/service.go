package documents

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/simplereplay/replay/pkg/errors"

	"github.com/simplereplay/replay/internal/models"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
	metrics    *Metrics
}

// NewService creates a new document service
func NewService(repository Repository) Service {
	return &ServiceImpl{
		repository: repository,
		metrics:    NewMetrics(),
	}
}

// CreateDocument validates the document and stores it under a new id
func (s *ServiceImpl) CreateDocument(ctx context.Context, doc *models.Document) (*models.Document, error) {
	if err := validate(doc); err != nil {
		s.metrics.observe("create", err)
		return nil, err
	}

	record := &models.ProjectRecord{ID: uuid.NewString()}
	record.Merge(doc)
	if record.Title == "" {
		record.Title = models.DefaultProjectTitle
	}

	err := s.repository.Create(ctx, record)
	s.metrics.observe("create", err)
	if err != nil {
		return nil, err
	}
	return record.ToDocument(), nil
}

// MergeDocument applies the fields present in doc to the stored document
func (s *ServiceImpl) MergeDocument(ctx context.Context, id string, doc *models.Document) (*models.Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.MissingFieldError("id")
	}
	if doc.ID != "" && doc.ID != id {
		return nil, apperrors.ValidationError("id", "body id does not match path id")
	}
	if err := validate(doc); err != nil {
		s.metrics.observe("merge", err)
		return nil, err
	}

	record, err := s.repository.Merge(ctx, id, doc)
	s.metrics.observe("merge", err)
	if err != nil {
		return nil, err
	}
	return record.ToDocument(), nil
}

// GetDocument returns the stored document or a NOT_FOUND error
func (s *ServiceImpl) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	record, err := s.repository.GetByID(ctx, id)
	s.metrics.observe("get", err)
	if err != nil {
		return nil, err
	}
	return record.ToDocument(), nil
}

// LastUpdated returns the modification time of a document
func (s *ServiceImpl) LastUpdated(ctx context.Context, id string) (time.Time, error) {
	return s.repository.UpdatedAt(ctx, id)
}

func validate(doc *models.Document) error {
	if doc == nil {
		return apperrors.MissingFieldError("document")
	}
	if err := doc.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid project document")
	}
	return nil
}
