package membership

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/simplereplay/replay/pkg/errors"

	"github.com/simplereplay/replay/internal/database"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "local.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(database.SchemaMembership))
	return NewService(NewRepository(db.DB))
}

func TestService_Classification(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		steps      func(s Service) error
		wantShared bool
	}{
		{
			name:       "opened from a link is shared",
			steps:      func(s Service) error { return s.Remember(ctx, "p1") },
			wantShared: true,
		},
		{
			name:  "saved by this profile is owned",
			steps: func(s Service) error { return s.MarkOwned(ctx, "p1") },
		},
		{
			name: "owned stays owned when reopened",
			steps: func(s Service) error {
				if err := s.MarkOwned(ctx, "p1"); err != nil {
					return err
				}
				return s.Remember(ctx, "p1")
			},
		},
		{
			name: "saving a shared project takes ownership",
			steps: func(s Service) error {
				if err := s.Remember(ctx, "p1"); err != nil {
					return err
				}
				return s.MarkOwned(ctx, "p1")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t)
			require.NoError(t, tt.steps(s))

			entry, ok, err := s.Lookup(ctx, "p1")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.wantShared, entry.Shared)

			all, err := s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestService_ForgetAndLookup(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	require.NoError(t, s.MarkOwned(ctx, "p1"))
	require.NoError(t, s.Remember(ctx, "p2"))

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.Forget(ctx, "p1"))
	require.NoError(t, s.Forget(ctx, "never-seen"))

	_, ok, err := s.Lookup(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "p2", all[0].ID)
}

func TestService_RejectsEmptyID(t *testing.T) {
	s := newTestService(t)
	assert.True(t, apperrors.Is(s.Remember(context.Background(), ""), apperrors.ErrCodeMissingField))
	assert.True(t, apperrors.Is(s.MarkOwned(context.Background(), " "), apperrors.ErrCodeMissingField))
}
