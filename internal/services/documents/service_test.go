package documents

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/simplereplay/replay/pkg/errors"

	"github.com/simplereplay/replay/internal/models"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, record *models.ProjectRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*models.ProjectRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectRecord), args.Error(1)
}

func (m *MockRepository) Merge(ctx context.Context, id string, doc *models.Document) (*models.ProjectRecord, error) {
	args := m.Called(ctx, id, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectRecord), args.Error(1)
}

func (m *MockRepository) UpdatedAt(ctx context.Context, id string) (time.Time, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(time.Time), args.Error(1)
}

func TestServiceImpl_CreateDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and default title", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.ProjectRecord")).
			Run(func(args mock.Arguments) {
				record := args.Get(1).(*models.ProjectRecord)
				assert.Len(t, record.ID, 36)
				assert.Equal(t, models.DefaultProjectTitle, record.Title)
			}).
			Return(nil)

		doc, err := service.CreateDocument(ctx, &models.Document{Games: []models.Game{{ID: "g1", Title: "Final"}}})
		require.NoError(t, err)
		assert.NotEmpty(t, doc.ID)
		assert.Len(t, doc.Games, 1)

		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid document", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		doc := &models.Document{
			Clips: []models.Clip{{ID: "c1", GameID: "g1", StartSec: 5, EndSec: 2}},
		}
		_, err := service.CreateDocument(ctx, doc)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))

		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("nil document", func(t *testing.T) {
		service := NewService(new(MockRepository))
		_, err := service.CreateDocument(ctx, nil)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeMissingField))
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.Anything).
			Return(apperrors.DatabaseError("create project", fmt.Errorf("disk full")))

		_, err := service.CreateDocument(ctx, &models.Document{Title: "x"})
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeDatabaseQuery))
	})
}

func TestServiceImpl_MergeDocument(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		doc      *models.Document
		setup    func(*MockRepository)
		wantCode apperrors.ErrorCode
	}{
		{
			name: "merges valid document",
			id:   "p1",
			doc:  &models.Document{Title: "Renamed"},
			setup: func(m *MockRepository) {
				m.On("Merge", ctx, "p1", mock.Anything).
					Return(&models.ProjectRecord{ID: "p1", Title: "Renamed"}, nil)
			},
		},
		{
			name:     "missing id",
			id:       " ",
			doc:      &models.Document{Title: "x"},
			wantCode: apperrors.ErrCodeMissingField,
		},
		{
			name:     "mismatched body id",
			id:       "p1",
			doc:      &models.Document{ID: "p2"},
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name: "invalid flag",
			id:   "p1",
			doc: &models.Document{
				ClipFlags: map[string][]models.Flag{"c1": {"excelente"}},
			},
			wantCode: apperrors.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			if tt.setup != nil {
				tt.setup(mockRepo)
			}
			service := NewService(mockRepo)

			doc, err := service.MergeDocument(ctx, tt.id, tt.doc)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Renamed", doc.Title)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestServiceImpl_GetDocument(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	mockRepo.On("GetByID", ctx, "p1").Return(&models.ProjectRecord{ID: "p1", Title: "Final"}, nil)
	mockRepo.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("project", "missing"))

	doc, err := service.GetDocument(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Final", doc.Title)

	_, err = service.GetDocument(ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))

	mockRepo.AssertExpectations(t)
}
