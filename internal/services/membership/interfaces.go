package membership

import (
	"context"

	"github.com/simplereplay/replay/internal/models"
)

// Repository defines the interface for the local project record
type Repository interface {
	InsertIfAbsent(ctx context.Context, entry *models.LocalProject) error
	Upsert(ctx context.Context, entry *models.LocalProject) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.LocalProject, error)
	List(ctx context.Context) ([]models.LocalProject, error)
}

// Service tracks which projects this profile created and which were opened from
// someone else's link. The record only feeds listings; it grants no access.
type Service interface {
	// Remember records id as shared unless it is already known
	Remember(ctx context.Context, id string) error

	// MarkOwned records id as owned, upgrading a shared entry
	MarkOwned(ctx context.Context, id string) error

	// Forget removes id from the record
	Forget(ctx context.Context, id string) error

	// Lookup reports the entry for id, if any
	Lookup(ctx context.Context, id string) (*models.LocalProject, bool, error)

	// List returns every remembered project, most recent first
	List(ctx context.Context) ([]models.LocalProject, error)
}
