// Package session wires the store, the sync engine, the link resolver and a
// player into one process-wide session.
package session

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/simplereplay/replay/pkg/config"
	apperrors "github.com/simplereplay/replay/pkg/errors"
	"github.com/simplereplay/replay/pkg/logging"

	"github.com/simplereplay/replay/internal/database"
	"github.com/simplereplay/replay/internal/deeplink"
	"github.com/simplereplay/replay/internal/demo"
	"github.com/simplereplay/replay/internal/models"
	"github.com/simplereplay/replay/internal/player"
	"github.com/simplereplay/replay/internal/services/cloudsync"
	"github.com/simplereplay/replay/internal/services/membership"
	"github.com/simplereplay/replay/internal/services/remote"
	"github.com/simplereplay/replay/internal/store"
)

// Watcher streams change notices for a stored project until ctx is done
type Watcher interface {
	Watch(ctx context.Context, id string, fn func(models.ChangeNotice)) error
}

// Options configures Open. Docs and Watcher default to a remote client for
// cfg.Sync.BaseURL; Player defaults to a LogPlayer.
type Options struct {
	Config  *config.Config
	Docs    cloudsync.DocumentStore
	Watcher Watcher
	Player  player.Player
	Logger  *logrus.Logger
}

// Session owns the single Store of the process and everything bound to it
type Session struct {
	Store    *store.Store
	Engine   *cloudsync.Engine
	Resolver *deeplink.Resolver
	Members  membership.Service
	Player   player.Player

	cfg     *config.Config
	watcher Watcher
	db      *database.DB
	unbind  func()
	log     *logrus.Entry
}

// Open creates the session. The local membership database is created and
// migrated on first use.
func Open(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, apperrors.ConfigError("config", "configuration is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	db, err := database.Initialize(cfg.Membership.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("opening local project record: %w", err)
	}
	if err := db.Migrate(database.SchemaMembership); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating local project record: %w", err)
	}
	members := membership.NewService(membership.NewRepository(db.DB))

	docs, watcher := opts.Docs, opts.Watcher
	if docs == nil || watcher == nil {
		client := remote.NewClient(remote.Config{
			BaseURL:          cfg.Sync.BaseURL,
			Timeout:          cfg.Sync.HTTPTimeout,
			HandshakeTimeout: cfg.WebSocket.HandshakeTimeout,
			Logger:           logger,
		})
		if docs == nil {
			docs = client
		}
		if watcher == nil {
			watcher = client
		}
	}

	p := opts.Player
	if p == nil {
		p = player.NewLogPlayer(logger)
	}

	st := store.New(store.WithLogger(logger))
	engine := cloudsync.NewEngine(st, docs, members, cloudsync.Config{
		SaveTimeout: cfg.Sync.SaveTimeout,
		LoadTimeout: cfg.Sync.LoadTimeout,
		DemoGameID:  demo.GameID,
		Logger:      logger,
	})
	resolver := deeplink.NewResolver(st, engine, members, deeplink.Config{
		Demo:   demo.Project,
		Logger: logger,
	})

	return &Session{
		Store:    st,
		Engine:   engine,
		Resolver: resolver,
		Members:  members,
		Player:   p,
		cfg:      cfg,
		watcher:  watcher,
		db:       db,
		unbind:   player.Bind(st, p, logger),
		log:      logging.WithComponent(logger, "session"),
	}, nil
}

// Start resolves the link the session was opened with
func (s *Session) Start(ctx context.Context, link deeplink.Link) (deeplink.Result, error) {
	return s.Resolver.Resolve(ctx, link)
}

// ShareURL builds a share link on the configured base URL. An empty
// ProjectID means the current project.
func (s *Session) ShareURL(link deeplink.Link) (string, error) {
	if link.ProjectID == "" {
		link.ProjectID = s.Store.CurrentProjectID()
	}
	if link.ProjectID == "" {
		return "", apperrors.ValidationError("project", "save the project before sharing it")
	}
	return deeplink.BuildShareURL(s.cfg.Share.BaseURL, link)
}

// Watch refreshes the current project whenever the stored document changes,
// until ctx is done. Changes are not applied over unsaved local edits.
func (s *Session) Watch(ctx context.Context, onRefresh func(found bool)) error {
	id := s.Store.CurrentProjectID()
	if id == "" {
		return apperrors.ValidationError("project", "nothing to watch; the project was never saved")
	}

	return s.watcher.Watch(ctx, id, func(n models.ChangeNotice) {
		log := s.log.WithFields(logrus.Fields{"project_id": n.ID, "updated_at": n.UpdatedAt})
		if s.Engine.Dirty() {
			log.Warn("Remote change ignored; local edits are unsaved")
			return
		}
		found, err := s.Engine.Refresh(ctx)
		if err != nil {
			log.WithError(err).Warn("Refresh failed")
			return
		}
		log.Info("Project refreshed")
		if onRefresh != nil {
			onRefresh(found)
		}
	})
}

// Close waits for queued writes and releases the local database
func (s *Session) Close() error {
	s.unbind()
	s.Engine.Close()
	return s.db.Close()
}
