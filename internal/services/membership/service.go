package membership

import (
	"context"
	"strings"

	apperrors "github.com/simplereplay/replay/pkg/errors"

	"github.com/simplereplay/replay/internal/models"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
}

// NewService creates a new membership service
func NewService(repository Repository) Service {
	return &ServiceImpl{repository: repository}
}

func (s *ServiceImpl) Remember(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.MissingFieldError("id")
	}
	return s.repository.InsertIfAbsent(ctx, &models.LocalProject{ID: id, Shared: true})
}

func (s *ServiceImpl) MarkOwned(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.MissingFieldError("id")
	}
	return s.repository.Upsert(ctx, &models.LocalProject{ID: id, Shared: false})
}

func (s *ServiceImpl) Forget(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}

func (s *ServiceImpl) Lookup(ctx context.Context, id string) (*models.LocalProject, bool, error) {
	entry, err := s.repository.Get(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entry, true, nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]models.LocalProject, error) {
	return s.repository.List(ctx)
}
