package cloudsync

import (
	"context"

	"github.com/simplereplay/replay/internal/models"
)

// DocumentStore is the remote document store as seen by the engine. Fetch
// must return a NOT_FOUND error for unknown ids.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	Merge(ctx context.Context, id string, doc *models.Document) (*models.Document, error)
	Fetch(ctx context.Context, id string) (*models.Document, error)
}
