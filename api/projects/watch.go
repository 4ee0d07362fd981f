package projects

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/simplereplay/replay/api/types"
	apperrors "github.com/simplereplay/replay/pkg/errors"

	"github.com/simplereplay/replay/internal/models"
)

const writeWait = 10 * time.Second

// Watch upgrades to a WebSocket and pushes a ChangeNotice whenever the stored
// document changes. The first notice carries the current timestamp. Changes
// are found by polling the database.
func Watch(deps *types.Dependencies) gin.HandlerFunc {
	settings := deps.Watch
	if settings.PollInterval <= 0 {
		settings.PollInterval = time.Second
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:   settings.ReadBufferSize,
		WriteBufferSize:  settings.WriteBufferSize,
		HandshakeTimeout: settings.HandshakeTimeout,
		// links are shared across origins, like the REST routes
		CheckOrigin: func(*http.Request) bool { return true },
	}

	return func(c *gin.Context) {
		id := c.Param("id")
		ctx := c.Request.Context()
		log := deps.Logger.WithField("project_id", id)

		// answer unknown ids with a plain 404 before upgrading
		updated, err := deps.DocumentService.LastUpdated(ctx, id)
		if err != nil {
			types.SendError(c, err)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade has already replied
			log.WithError(err).Warn("WebSocket upgrade failed")
			return
		}
		defer conn.Close()

		// the client never sends data; reading detects when it goes away
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		send := func(at time.Time) bool {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(models.ChangeNotice{ID: id, UpdatedAt: at}); err != nil {
				log.WithError(err).Debug("Watcher write failed")
				return false
			}
			return true
		}

		if !send(updated) {
			return
		}
		log.Debug("Watcher connected")

		ticker := time.NewTicker(settings.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gone:
				log.Debug("Watcher disconnected")
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				cur, err := deps.DocumentService.LastUpdated(ctx, id)
				if apperrors.Is(err, apperrors.ErrCodeNotFound) {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "project deleted"),
						time.Now().Add(writeWait))
					return
				}
				if err != nil {
					log.WithError(err).Warn("Polling project timestamp failed")
					continue
				}
				if cur.After(updated) {
					updated = cur
					if !send(cur) {
						return
					}
				}
			}
		}
	}
}
