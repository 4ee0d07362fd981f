// Package deeplink reads and builds share links and resolves them into the
// initial state of a session.
package deeplink

import (
	"net/url"
	"strings"

	apperrors "github.com/simplereplay/replay/pkg/errors"
)

// Query parameters carried by a share link
const (
	ParamProject  = "project"
	ParamGame     = "game"
	ParamPlaylist = "playlist"
	ParamMode     = "mode"

	// ModeView is the only meaningful value of the mode parameter
	ModeView = "view"
)

// Link is a parsed share link. Every field is optional.
type Link struct {
	ProjectID  string
	GameID     string
	PlaylistID string
	View       bool
}

// ReadOnly reports whether the link opens a read-only session. Playlist
// links are always read-only.
func (l Link) ReadOnly() bool {
	return l.View || l.PlaylistID != ""
}

// Parse reads a link from a full URL, a bare query string ("project=p1&mode=view")
// or a bare project id
func Parse(raw string) (Link, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Link{}, nil
	}

	var query string
	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Link{}, apperrors.ValidationError("link", err.Error())
		}
		query = u.RawQuery
	case strings.HasPrefix(raw, "?"):
		query = raw[1:]
	case strings.Contains(raw, "="):
		query = raw
	default:
		return Link{ProjectID: raw}, nil
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return Link{}, apperrors.ValidationError("link", err.Error())
	}
	return Link{
		ProjectID:  strings.TrimSpace(values.Get(ParamProject)),
		GameID:     strings.TrimSpace(values.Get(ParamGame)),
		PlaylistID: strings.TrimSpace(values.Get(ParamPlaylist)),
		View:       values.Get(ParamMode) == ModeView,
	}, nil
}

// BuildShareURL appends the link parameters to base. A playlist link always
// carries mode=view.
func BuildShareURL(base string, l Link) (string, error) {
	if l.ProjectID == "" {
		return "", apperrors.MissingFieldError(ParamProject)
	}
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", apperrors.ValidationError("base_url", err.Error())
	}

	// fixed order; url.Values.Encode would sort the keys
	params := []string{ParamProject + "=" + url.QueryEscape(l.ProjectID)}
	if l.GameID != "" {
		params = append(params, ParamGame+"="+url.QueryEscape(l.GameID))
	}
	if l.PlaylistID != "" {
		params = append(params, ParamPlaylist+"="+url.QueryEscape(l.PlaylistID))
	}
	if l.ReadOnly() {
		params = append(params, ParamMode+"="+ModeView)
	}

	u.RawQuery = strings.Join(params, "&")
	u.Fragment = ""
	return u.String(), nil
}
