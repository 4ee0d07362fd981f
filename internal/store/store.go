// Package store holds the in-memory state of one analysis session: the domain
// collections of the current project plus transient view state, and the event
// bus that tells observers what changed.
//
// Every mutation runs under a single mutex. Events produced by a mutation are
// dispatched after the lock is released, in the order the mutator produced
// them, on the calling goroutine. Handlers may therefore call back into the
// Store.
package store

import (
	"sync"

	"github.com/sirupsen/logrus"

	apperrors "github.com/simplereplay/replay/pkg/errors"
	"github.com/simplereplay/replay/pkg/logging"

	"github.com/simplereplay/replay/internal/filter"
	"github.com/simplereplay/replay/internal/models"
)

// Mode is the UI mode of the session
type Mode string

const (
	ModeAnalyze Mode = "analyze"
	ModeView    Mode = "view"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeAnalyze || m == ModeView
}

type subscription struct {
	id      int
	handler Handler
}

// Store is the single source of truth for a session. Create it once with New.
type Store struct {
	mu sync.Mutex

	project models.Project

	currentGameID  string
	currentClipID  string
	mode           Mode
	panelCollapsed bool
	focusView      bool
	tagFilters     []string
	flagFilters    []models.Flag
	playlistFilter string
	readOnly       bool

	handlersMu sync.RWMutex
	handlers   map[EventKind][]subscription
	nextSubID  int

	log *logrus.Entry
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for ignored mutations
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Store) {
		s.log = logging.WithComponent(logger, "store")
	}
}

// WithSeed starts the store with the given project and selects its first game.
// No events are emitted for the seed.
func WithSeed(p models.Project) Option {
	return func(s *Store) {
		s.project = normalize(p.Clone())
		if len(s.project.Games) > 0 {
			s.currentGameID = s.project.Games[0].ID
		}
	}
}

// New creates a store in analyze mode with an empty project
func New(opts ...Option) *Store {
	s := &Store{
		project:  normalize(models.Project{}),
		mode:     ModeAnalyze,
		handlers: make(map[EventKind][]subscription),
		log:      logging.WithComponent(nil, "store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// On registers h for events of the given kind. Handlers run in registration
// order. The returned function removes the registration.
func (s *Store) On(kind EventKind, h Handler) (unsubscribe func()) {
	s.handlersMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.handlers[kind] = append(s.handlers[kind], subscription{id: id, handler: h})
	s.handlersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.handlersMu.Lock()
			defer s.handlersMu.Unlock()
			subs := s.handlers[kind]
			for i, sub := range subs {
				if sub.id == id {
					s.handlers[kind] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
		})
	}
}

// OnEach registers h for several kinds at once
func (s *Store) OnEach(kinds []EventKind, h Handler) (unsubscribe func()) {
	unsubs := make([]func(), 0, len(kinds))
	for _, kind := range kinds {
		unsubs = append(unsubs, s.On(kind, h))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (s *Store) dispatch(events []Event) {
	for _, ev := range events {
		s.handlersMu.RLock()
		subs := append([]subscription(nil), s.handlers[ev.Kind()]...)
		s.handlersMu.RUnlock()

		for _, sub := range subs {
			sub.handler(ev)
		}
	}
}

// update applies fn under the lock and dispatches what it returns
func (s *Store) update(fn func() []Event) {
	s.mu.Lock()
	events := fn()
	s.mu.Unlock()
	s.dispatch(events)
}

// updateChecked is update for mutators that can fail
func (s *Store) updateChecked(fn func() ([]Event, error)) error {
	s.mu.Lock()
	events, err := fn()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.dispatch(events)
	return nil
}

// mutateDomain is updateChecked for operations rejected in read-only mode
func (s *Store) mutateDomain(op string, fn func() ([]Event, error)) error {
	return s.updateChecked(func() ([]Event, error) {
		if s.readOnly {
			s.log.WithField("operation", op).Debug("Rejected mutation in read-only mode")
			return nil, apperrors.PermissionDenied(op)
		}
		return fn()
	})
}

func normalize(p models.Project) models.Project {
	if p.PlaylistItems == nil {
		p.PlaylistItems = make(map[string][]string)
	}
	if p.ClipFlags == nil {
		p.ClipFlags = make(map[string][]models.Flag)
	}
	if p.Comments == nil {
		p.Comments = make(map[string][]models.Comment)
	}
	return p
}

// criteria must be called with the lock held
func (s *Store) criteria() filter.Criteria {
	return filter.Criteria{
		GameID:     s.currentGameID,
		TagIDs:     append([]string(nil), s.tagFilters...),
		Flags:      append([]models.Flag(nil), s.flagFilters...),
		PlaylistID: s.playlistFilter,
	}
}

// visible must be called with the lock held
func (s *Store) visible() []models.Clip {
	return filter.VisibleClips(filter.Input{
		Clips:         s.project.Clips,
		ClipFlags:     s.project.ClipFlags,
		PlaylistItems: s.project.PlaylistItems,
		Criteria:      s.criteria(),
	})
}

func (s *Store) clipIndex(id string) int {
	for i, c := range s.project.Clips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) playlistIndex(id string) int {
	for i, p := range s.project.Playlists {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) hasGame(id string) bool {
	_, ok := s.project.FindGame(id)
	return ok
}
