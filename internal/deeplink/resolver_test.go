package deeplink

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/simplereplay/replay/pkg/errors"
	"github.com/simplereplay/replay/pkg/logging"

	"github.com/simplereplay/replay/internal/database"
	"github.com/simplereplay/replay/internal/demo"
	"github.com/simplereplay/replay/internal/models"
	"github.com/simplereplay/replay/internal/services/membership"
	"github.com/simplereplay/replay/internal/store"
)

// MockLoader is a mock implementation of the Loader interface
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) LoadFromCloud(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func sharedProject() models.Project {
	return models.Project{
		ID:    "p1",
		Title: "Final",
		Games: []models.Game{
			{ID: "g1", Title: "Semifinal", VideoRef: "abc12345678"},
			{ID: "g2", Title: "Final", VideoRef: "zyx98765432"},
		},
		Clips: []models.Clip{
			{ID: "c1", GameID: "g2", StartSec: 1, EndSec: 5},
			{ID: "c2", GameID: "g2", StartSec: 8, EndSec: 12},
		},
		Playlists:     []models.Playlist{{ID: "pl1", Name: "Best", GameID: "g2"}},
		PlaylistItems: map[string][]string{"pl1": {"c2"}},
	}
}

type fixture struct {
	store    *store.Store
	loader   *MockLoader
	members  membership.Service
	resolver *Resolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "local.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(database.SchemaMembership))

	f := &fixture{
		store:   store.New(store.WithLogger(logging.Discard())),
		loader:  new(MockLoader),
		members: membership.NewService(membership.NewRepository(db.DB)),
	}
	f.resolver = NewResolver(f.store, f.loader, f.members, Config{Demo: demo.Project, Logger: logging.Discard()})
	return f
}

// expectLoad makes the loader behave like the sync engine on a successful load
func (f *fixture) expectLoad(p models.Project) {
	f.loader.On("LoadFromCloud", mock.Anything, p.ID).
		Run(func(mock.Arguments) { f.store.ReplaceProject(p) }).
		Return(true, nil).Once()
}

func TestResolve_NoProjectSeedsDemo(t *testing.T) {
	f := newFixture(t)

	var gameEvents []string
	f.store.On(store.GameChanged, func(ev store.Event) {
		gameEvents = append(gameEvents, ev.(store.GameChangedEvent).GameID)
	})

	res, err := f.resolver.Resolve(context.Background(), Link{})
	require.NoError(t, err)
	assert.True(t, res.Demo)
	assert.False(t, res.ReadOnly)

	g, ok := f.store.CurrentGame()
	require.True(t, ok)
	assert.Equal(t, demo.GameID, g.ID)
	assert.Equal(t, []string{demo.GameID}, gameEvents)
	assert.NotEmpty(t, f.store.Clips())
	f.loader.AssertNotCalled(t, "LoadFromCloud", mock.Anything, mock.Anything)
}

func TestResolve_LoadsProjectAndSelectsGame(t *testing.T) {
	f := newFixture(t)
	f.expectLoad(sharedProject())

	// demo data present before the link is resolved must not survive
	f.store.ReplaceProject(demo.Project())

	res, err := f.resolver.Resolve(context.Background(), Link{ProjectID: "p1", GameID: "g2"})
	require.NoError(t, err)
	assert.True(t, res.Loaded)
	assert.True(t, res.Shared)
	assert.False(t, res.ReadOnly)

	g, ok := f.store.CurrentGame()
	require.True(t, ok)
	assert.Equal(t, "g2", g.ID)
	assert.Equal(t, store.ModeAnalyze, f.store.Mode())
	for _, c := range f.store.Clips() {
		assert.NotEqual(t, demo.GameID, c.GameID)
	}

	entry, ok, err := f.members.Lookup(context.Background(), "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, entry.Shared)
}

func TestResolve_OwnedProjectStaysOwned(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.members.MarkOwned(context.Background(), "p1"))
	f.expectLoad(sharedProject())

	res, err := f.resolver.Resolve(context.Background(), Link{ProjectID: "p1"})
	require.NoError(t, err)
	assert.False(t, res.Shared)

	entry, ok, err := f.members.Lookup(context.Background(), "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, entry.Shared)
}

func TestResolve_ViewLinkIsReadOnly(t *testing.T) {
	f := newFixture(t)
	f.expectLoad(sharedProject())

	res, err := f.resolver.Resolve(context.Background(), Link{ProjectID: "p1", View: true})
	require.NoError(t, err)
	assert.True(t, res.ReadOnly)
	assert.True(t, f.store.ReadOnly())
	assert.Equal(t, store.ModeView, f.store.Mode())

	_, err = f.store.AddGame("Mine", "abc12345678")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodePermissionDenied))
}

func TestResolve_PlaylistLink(t *testing.T) {
	f := newFixture(t)
	f.expectLoad(sharedProject())

	res, err := f.resolver.Resolve(context.Background(), Link{ProjectID: "p1", GameID: "g2", PlaylistID: "pl1"})
	require.NoError(t, err)
	assert.True(t, res.ReadOnly)
	assert.Equal(t, store.ModeView, f.store.Mode())
	assert.Equal(t, "pl1", f.store.Filters().PlaylistID)

	visible := f.store.VisibleClips()
	require.Len(t, visible, 1)
	assert.Equal(t, "c2", visible[0].ID)
}

func TestResolve_PlaylistLinkWithoutGame(t *testing.T) {
	f := newFixture(t)
	f.expectLoad(sharedProject())

	res, err := f.resolver.Resolve(context.Background(), Link{ProjectID: "p1", PlaylistID: "pl1", View: true})
	require.NoError(t, err)
	assert.True(t, res.ReadOnly)

	g, ok := f.store.CurrentGame()
	require.True(t, ok)
	assert.Equal(t, "g2", g.ID, "the playlist's game is selected")
	assert.Equal(t, "pl1", f.store.Filters().PlaylistID)

	visible := f.store.VisibleClips()
	require.Len(t, visible, 1)
	assert.Equal(t, "c2", visible[0].ID)
}

func TestResolve_NotFound(t *testing.T) {
	f := newFixture(t)
	f.loader.On("LoadFromCloud", mock.Anything, "gone").Return(false, nil)

	res, err := f.resolver.Resolve(context.Background(), Link{ProjectID: "gone", View: true})
	require.NoError(t, err)
	assert.True(t, res.NotFound)
	assert.False(t, res.Loaded)
	assert.True(t, res.ReadOnly, "the access mode applies even without a project")
	assert.Empty(t, f.store.Games(), "demo data was discarded")

	_, ok, err := f.members.Lookup(context.Background(), "gone")
	require.NoError(t, err)
	assert.False(t, ok, "missing projects are not remembered")
}

func TestResolve_LoadError(t *testing.T) {
	f := newFixture(t)
	cause := apperrors.TimeoutError("LoadFromCloud", "15s")
	f.loader.On("LoadFromCloud", mock.Anything, "p1").Return(false, cause)

	res, err := f.resolver.Resolve(context.Background(), Link{ProjectID: "p1", PlaylistID: "pl1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeAPITimeout))
	assert.False(t, res.NotFound)
	assert.True(t, f.store.ReadOnly())
}

func TestResolve_WithoutMembership(t *testing.T) {
	st := store.New(store.WithLogger(logging.Discard()))
	loader := new(MockLoader)
	p := sharedProject()
	loader.On("LoadFromCloud", mock.Anything, "p1").
		Run(func(mock.Arguments) { st.ReplaceProject(p) }).
		Return(true, nil)

	r := NewResolver(st, loader, nil, Config{Logger: logging.Discard()})
	res, err := r.Resolve(context.Background(), Link{ProjectID: "p1"})
	require.NoError(t, err)
	assert.True(t, res.Loaded)
	assert.True(t, res.Shared)

	// without a demo source the store stays empty
	st2 := store.New(store.WithLogger(logging.Discard()))
	res, err = NewResolver(st2, loader, nil, Config{Logger: logging.Discard()}).Resolve(context.Background(), Link{})
	require.NoError(t, err)
	assert.True(t, res.Demo)
	assert.Empty(t, st2.Games())
}
