package deeplink

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/simplereplay/replay/pkg/logging"

	"github.com/simplereplay/replay/internal/models"
	"github.com/simplereplay/replay/internal/services/membership"
	"github.com/simplereplay/replay/internal/store"
)

// Loader loads a stored project into the store; found is false when the
// project does not exist
type Loader interface {
	LoadFromCloud(ctx context.Context, id string) (found bool, err error)
}

// Result describes what a resolved link left in the store
type Result struct {
	Link     Link
	Loaded   bool
	NotFound bool
	Shared   bool
	Demo     bool
	ReadOnly bool
}

// Config holds the resolver settings
type Config struct {
	// Demo seeds the store when the link names no project
	Demo   func() models.Project
	Logger *logrus.Logger
}

// Resolver turns a link into the initial session state
type Resolver struct {
	store   *store.Store
	loader  Loader
	members membership.Service
	demo    func() models.Project
	log     *logrus.Entry
}

// NewResolver creates a resolver. members may be nil.
func NewResolver(st *store.Store, loader Loader, members membership.Service, cfg Config) *Resolver {
	return &Resolver{
		store:   st,
		loader:  loader,
		members: members,
		demo:    cfg.Demo,
		log:     logging.WithComponent(cfg.Logger, "deeplink"),
	}
}

// Resolve applies link to the store. A missing project is reported through
// Result.NotFound. The access mode of the link is applied even when the load
// fails.
func (r *Resolver) Resolve(ctx context.Context, link Link) (Result, error) {
	res := Result{Link: link}
	log := r.log.WithFields(logrus.Fields{
		"project_id":  link.ProjectID,
		"game_id":     link.GameID,
		"playlist_id": link.PlaylistID,
		"view":        link.View,
	})

	var loadErr error
	if link.ProjectID != "" {
		r.store.Clear()
		found, err := r.loader.LoadFromCloud(ctx, link.ProjectID)
		switch {
		case err != nil:
			loadErr = fmt.Errorf("loading project %s: %w", link.ProjectID, err)
		case !found:
			res.NotFound = true
			log.Warn("Linked project not found")
		default:
			res.Loaded = true
			res.Shared = r.classify(ctx, link.ProjectID)
			if link.GameID != "" {
				r.store.SetCurrentGame(link.GameID)
			}
		}
	} else {
		r.seedDemo()
		res.Demo = true
	}

	if link.ReadOnly() {
		r.store.SetReadOnly()
		// view is always accepted, read-only or not
		_ = r.store.SetMode(store.ModeView)
	}
	if link.PlaylistID != "" {
		r.store.SetPlaylistFilter(link.PlaylistID)
	}
	res.ReadOnly = r.store.ReadOnly()

	if loadErr != nil {
		return res, loadErr
	}
	log.WithFields(logrus.Fields{
		"loaded":    res.Loaded,
		"shared":    res.Shared,
		"read_only": res.ReadOnly,
	}).Info("Link resolved")
	return res, nil
}

// classify records the project in the local record. A project remembered as
// owned stays owned; anything else is recorded as shared.
func (r *Resolver) classify(ctx context.Context, id string) bool {
	if r.members == nil {
		return true
	}
	if err := r.members.Remember(ctx, id); err != nil {
		r.log.WithError(err).WithField("project_id", id).Warn("Could not remember project")
		return true
	}
	entry, ok, err := r.members.Lookup(ctx, id)
	if err != nil || !ok {
		return true
	}
	return entry.Shared
}

func (r *Resolver) seedDemo() {
	if r.demo == nil {
		return
	}
	p := r.demo()
	r.store.ReplaceProject(p)
	if len(p.Games) > 0 {
		r.store.SetCurrentGame(p.Games[0].ID)
	}
}
