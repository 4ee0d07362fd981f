package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/simplereplay/replay/internal/models"
)

// Watch streams change notices for one project until ctx is done or the
// server closes the connection. The first notice carries the current state.
func (c *Client) Watch(ctx context.Context, id string, fn func(models.ChangeNotice)) error {
	wsURL, err := c.watchURL(id)
	if err != nil {
		return err
	}

	conn, resp, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			return responseError(resp)
		}
		return transportError(ctx, "watch "+id, err)
	}
	defer conn.Close()

	// unblock ReadJSON when the caller gives up
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	for {
		var notice models.ChangeNotice
		if err := conn.ReadJSON(&notice); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("reading change notice: %w", err)
		}
		if notice.ID == "" {
			continue
		}
		fn(notice)
	}
}

func (c *Client) watchURL(id string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.New("unsupported base url scheme " + u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + projectsPath + "/" + id + "/watch"
	return u.String(), nil
}
