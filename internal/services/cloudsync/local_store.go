package cloudsync

import (
	"context"

	"github.com/simplereplay/replay/internal/models"
	"github.com/simplereplay/replay/internal/services/documents"
)

// LocalStore serves documents from an in-process document service, for
// single-binary use and tests
type LocalStore struct {
	service documents.Service
}

// NewLocalStore wraps a document service as a DocumentStore
func NewLocalStore(service documents.Service) *LocalStore {
	return &LocalStore{service: service}
}

func (l *LocalStore) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	return l.service.CreateDocument(ctx, doc)
}

func (l *LocalStore) Merge(ctx context.Context, id string, doc *models.Document) (*models.Document, error) {
	return l.service.MergeDocument(ctx, id, doc)
}

func (l *LocalStore) Fetch(ctx context.Context, id string) (*models.Document, error) {
	return l.service.GetDocument(ctx, id)
}
