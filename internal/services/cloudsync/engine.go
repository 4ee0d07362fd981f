// Package cloudsync saves the session's project to the document store, loads
// it back, and keeps the local record of owned and shared projects.
package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/simplereplay/replay/pkg/errors"
	"github.com/simplereplay/replay/pkg/logging"

	"github.com/simplereplay/replay/internal/models"
	"github.com/simplereplay/replay/internal/services/membership"
	"github.com/simplereplay/replay/internal/store"
)

const (
	// DefaultTimeout bounds how long SaveToCloud and LoadFromCloud wait
	DefaultTimeout = 15 * time.Second

	listConcurrency = 8
)

// Config holds the engine settings
type Config struct {
	SaveTimeout time.Duration
	LoadTimeout time.Duration
	// DemoGameID names the bundled demonstration game, dropped on the first
	// save when the user added games of their own
	DemoGameID string
	Logger     *logrus.Logger
}

// Engine moves the project between the Store and a DocumentStore. All writes
// for one project id go through a single FIFO lane.
type Engine struct {
	store   *store.Store
	docs    DocumentStore
	members membership.Service
	queue   *writeQueue
	cfg     Config
	metrics *Metrics
	log     *logrus.Entry

	saving atomic.Bool

	mu              sync.Mutex
	generation      uint64 // bumped by every edit
	savedGeneration uint64 // generation captured by the last successful write, load or clear
	epoch           uint64 // bumped by every load and clear

	unsubscribe func()
}

// NewEngine creates an engine bound to st and subscribes it to the store's
// edit, load, clear and comment events. members may be nil.
func NewEngine(st *store.Store, docs DocumentStore, members membership.Service, cfg Config) *Engine {
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = DefaultTimeout
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = DefaultTimeout
	}

	log := logging.WithComponent(cfg.Logger, "cloudsync")
	e := &Engine{
		store:   st,
		docs:    docs,
		members: members,
		queue:   newWriteQueue(docs, log),
		cfg:     cfg,
		metrics: NewMetrics(),
		log:     log,
	}

	unsubEdits := st.OnEach(store.EditKinds, func(store.Event) {
		e.mu.Lock()
		e.generation++
		e.mu.Unlock()
	})
	// a cleared store has nothing to save, like a freshly loaded one
	unsubLoad := st.OnEach([]store.EventKind{store.ProjectLoaded, store.ProjectCleared}, func(store.Event) {
		e.mu.Lock()
		e.savedGeneration = e.generation
		e.epoch++
		e.mu.Unlock()
	})
	unsubComments := st.On(store.CommentAdded, e.autoSave)

	e.unsubscribe = func() {
		unsubEdits()
		unsubLoad()
		unsubComments()
	}
	return e
}

// Dirty reports whether the store holds edits that were not saved or loaded
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation != e.savedGeneration
}

// SaveToCloud writes the full project. Without a project id a new document is
// created and its id adopted. When the write does not finish within the save
// timeout an API_TIMEOUT error is returned; the write is not aborted and its
// outcome is unknown to the caller. A second call while a save is in flight
// returns CONFLICT.
func (e *Engine) SaveToCloud(ctx context.Context) (string, error) {
	if e.store.ReadOnly() {
		return "", apperrors.PermissionDenied("SaveToCloud")
	}
	if !e.saving.CompareAndSwap(false, true) {
		return "", apperrors.Conflict("project", "a save is already in progress")
	}

	e.dropDemoGame()

	snapshot := e.store.Snapshot()
	gen, epoch := e.marks()
	started := time.Now()

	done, err := e.queue.enqueue(ctx, snapshot.ID, ToDocument(snapshot), func(res writeResult) {
		defer e.saving.Store(false)
		if res.err != nil {
			e.metrics.recordSave("explicit", "error", started)
			return
		}
		e.metrics.recordSave("explicit", "ok", started)
		if e.adopt(snapshot.ID, gen, epoch, res.doc.ID) {
			e.markOwned(res.doc.ID)
		}
	})
	if err != nil {
		e.saving.Store(false)
		return "", fmt.Errorf("queueing save: %w", err)
	}

	timer := time.NewTimer(e.cfg.SaveTimeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			e.log.WithError(res.err).Warn("Save failed")
			return "", fmt.Errorf("saving project: %w", res.err)
		}
		e.log.WithField("project_id", res.doc.ID).Info("Project saved")
		return res.doc.ID, nil
	case <-timer.C:
		e.log.WithField("timeout", e.cfg.SaveTimeout).Warn("Save timed out; outcome unknown")
		return "", apperrors.TimeoutError("SaveToCloud", e.cfg.SaveTimeout.String())
	case <-ctx.Done():
		return "", apperrors.TimeoutError("SaveToCloud", "caller deadline").WithCause(ctx.Err())
	}
}

// autoSave queues a write after a comment was added. Failures are only logged;
// the comment stays in memory for the next save.
func (e *Engine) autoSave(store.Event) {
	id := e.store.CurrentProjectID()
	if id == "" {
		return
	}

	snapshot := e.store.Snapshot()
	gen, epoch := e.marks()
	started := time.Now()

	_, err := e.queue.enqueue(context.Background(), id, ToDocument(snapshot), func(res writeResult) {
		if res.err != nil {
			e.metrics.recordSave("autosave", "error", started)
			e.log.WithError(res.err).WithField("project_id", id).Warn("Comment auto-save failed")
			return
		}
		e.metrics.recordSave("autosave", "ok", started)
		e.adopt(id, gen, epoch, res.doc.ID)
	})
	if err != nil {
		e.log.WithError(err).Warn("Comment auto-save not queued")
	}
}

// adopt records a finished write on the store, unless another project was
// loaded meanwhile. It reports whether the id was adopted. It runs on the
// write lane goroutine, so ProjectSaved handlers run there too.
func (e *Engine) adopt(snapshotID string, gen, epoch uint64, savedID string) bool {
	e.mu.Lock()
	stale := e.epoch != epoch
	e.mu.Unlock()
	if stale || e.store.CurrentProjectID() != snapshotID {
		e.log.WithField("project_id", savedID).Info("Project changed while saving; keeping current state")
		return false
	}

	e.store.MarkSaved(savedID)

	e.mu.Lock()
	if gen > e.savedGeneration {
		e.savedGeneration = gen
	}
	e.mu.Unlock()
	return true
}

func (e *Engine) markOwned(id string) {
	if e.members == nil {
		return
	}
	if err := e.members.MarkOwned(context.Background(), id); err != nil {
		e.log.WithError(err).WithField("project_id", id).Warn("Could not record project as owned")
	}
}

// dropDemoGame removes the demonstration game before a project is first
// saved, if the user created games of their own
func (e *Engine) dropDemoGame() {
	if e.cfg.DemoGameID == "" || e.store.CurrentProjectID() != "" {
		return
	}
	games := e.store.Games()
	if len(games) < 2 {
		return
	}
	for _, g := range games {
		if g.ID == e.cfg.DemoGameID {
			if err := e.store.RemoveGame(g.ID); err != nil {
				e.log.WithError(err).Warn("Could not drop demo game")
			}
			return
		}
	}
}

func (e *Engine) marks() (gen, epoch uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation, e.epoch
}

// LoadFromCloud replaces the store's project with the stored document. It
// returns false with a nil error when the document does not exist. Unsaved
// edits are discarded.
func (e *Engine) LoadFromCloud(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, apperrors.MissingFieldError("project")
	}

	doc, err := e.fetch(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeNotFound) {
			e.metrics.recordLoad("not_found")
			e.log.WithField("project_id", id).Info("Project not found")
			return false, nil
		}
		if apperrors.Is(err, apperrors.ErrCodeAPITimeout) {
			e.metrics.recordLoad("timeout")
		} else {
			e.metrics.recordLoad("error")
		}
		return false, err
	}

	if doc.ID == "" {
		doc.ID = id
	}
	e.store.ReplaceProject(FromDocument(doc))
	e.metrics.recordLoad("ok")
	e.log.WithField("project_id", id).Info("Project loaded")
	return true, nil
}

// Refresh reloads the current project, keeping the selected game and playlist
// filter when they still exist
func (e *Engine) Refresh(ctx context.Context) (bool, error) {
	id := e.store.CurrentProjectID()
	if id == "" {
		return false, apperrors.ValidationError("project", "nothing to refresh; the project was never saved")
	}

	prevGame, hadGame := e.store.CurrentGame()
	prevPlaylist := e.store.Filters().PlaylistID

	found, err := e.LoadFromCloud(ctx, id)
	if err != nil || !found {
		return found, err
	}

	if hadGame {
		if _, ok := e.store.Snapshot().FindGame(prevGame.ID); ok {
			e.store.SetCurrentGame(prevGame.ID)
		}
	}
	if prevPlaylist != "" {
		for _, pl := range e.store.Playlists() {
			if pl.ID == prevPlaylist {
				e.store.SetPlaylistFilter(prevPlaylist)
				break
			}
		}
	}
	return true, nil
}

// fetch applies the load timeout and normalizes transport failures
func (e *Engine) fetch(ctx context.Context, id string) (*models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.LoadTimeout)
	defer cancel()

	doc, err := e.docs.Fetch(ctx, id)
	if err == nil {
		return doc, nil
	}

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return nil, err
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, apperrors.TimeoutError("LoadFromCloud", e.cfg.LoadTimeout.String()).WithCause(err)
	default:
		return nil, apperrors.ExternalServiceError("documents", err)
	}
}

// ListProjects resolves every remembered project id to a summary, newest
// first. Ids whose document no longer exists are left out of the result but
// stay remembered.
func (e *Engine) ListProjects(ctx context.Context) ([]models.Summary, error) {
	if e.members == nil {
		return nil, nil
	}
	entries, err := e.members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing remembered projects: %w", err)
	}

	results := make([]*models.Summary, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			doc, err := e.fetch(gctx, entry.ID)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrCodeNotFound) {
					e.log.WithField("project_id", entry.ID).Debug("Remembered project no longer exists")
					return nil
				}
				return fmt.Errorf("loading project %s: %w", entry.ID, err)
			}
			if doc.ID == "" {
				doc.ID = entry.ID
			}
			s := summarize(doc, entry.Shared)
			results[i] = &s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.Summary, 0, len(results))
	for _, s := range results {
		if s != nil {
			out = append(out, *s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// ForgetProject removes a project from the local record. The document itself
// is left untouched.
func (e *Engine) ForgetProject(ctx context.Context, id string) error {
	if e.members == nil {
		return nil
	}
	return e.members.Forget(ctx, id)
}

// Close stops listening to the store and waits for queued writes to finish
func (e *Engine) Close() {
	e.unsubscribe()
	e.queue.close()
}
