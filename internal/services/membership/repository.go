package membership

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/simplereplay/replay/pkg/errors"

	"github.com/simplereplay/replay/internal/models"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new membership repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// InsertIfAbsent creates the entry unless one with the same id exists
func (r *RepositoryImpl) InsertIfAbsent(ctx context.Context, entry *models.LocalProject) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry).Error
	if err != nil {
		return fmt.Errorf("remembering project: %w", err)
	}
	return nil
}

// Upsert creates the entry or overwrites its shared flag
func (r *RepositoryImpl) Upsert(ctx context.Context, entry *models.LocalProject) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"shared"}),
		}).
		Create(entry).Error
	if err != nil {
		return fmt.Errorf("saving project membership: %w", err)
	}
	return nil
}

// Delete removes an entry; deleting an unknown id is not an error
func (r *RepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.LocalProject{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("forgetting project: %w", err)
	}
	return nil
}

// Get returns the entry for id or a NOT_FOUND error
func (r *RepositoryImpl) Get(ctx context.Context, id string) (*models.LocalProject, error) {
	var entry models.LocalProject
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("local project", id)
		}
		return nil, fmt.Errorf("getting project membership: %w", err)
	}
	return &entry, nil
}

// List returns all entries, newest first
func (r *RepositoryImpl) List(ctx context.Context) ([]models.LocalProject, error) {
	var entries []models.LocalProject
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return entries, nil
}
