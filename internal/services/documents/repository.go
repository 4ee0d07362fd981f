package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/simplereplay/replay/pkg/errors"

	"github.com/simplereplay/replay/internal/models"
)

// RepositoryImpl implements the Repository interface on gorm
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new document repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// Create inserts a new project record
func (r *RepositoryImpl) Create(ctx context.Context, record *models.ProjectRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperrors.DatabaseError("create project", err)
	}
	return nil
}

// GetByID retrieves a project record by its id
func (r *RepositoryImpl) GetByID(ctx context.Context, id string) (*models.ProjectRecord, error) {
	var record models.ProjectRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("project", id)
		}
		return nil, apperrors.DatabaseError("get project", err)
	}
	return &record, nil
}

// Merge reads, merges and writes the record inside one transaction
func (r *RepositoryImpl) Merge(ctx context.Context, id string, doc *models.Document) (*models.ProjectRecord, error) {
	var record models.ProjectRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&record, "id = ?", id).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = models.ProjectRecord{ID: id}
			record.Merge(doc)
			if record.Title == "" {
				record.Title = models.DefaultProjectTitle
			}
			return tx.Create(&record).Error
		case err != nil:
			return err
		}

		record.Merge(doc)
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, apperrors.DatabaseError("merge project", err)
	}
	return &record, nil
}

// UpdatedAt returns the modification time without loading the collections
func (r *RepositoryImpl) UpdatedAt(ctx context.Context, id string) (time.Time, error) {
	var record models.ProjectRecord
	err := r.db.WithContext(ctx).Select("id", "updated_at").First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, apperrors.NotFound("project", id)
		}
		return time.Time{}, fmt.Errorf("getting project timestamp: %w", err)
	}
	return record.UpdatedAt, nil
}
