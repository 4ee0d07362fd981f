package store

import (
	apperrors "github.com/simplereplay/replay/pkg/errors"

	"github.com/simplereplay/replay/internal/filter"
	"github.com/simplereplay/replay/internal/models"
)

// View state mutators change what is shown, never what is saved, so they work
// in read-only mode too.

// SetCurrentGame selects a game; an empty id clears the selection. A playlist
// filter that belongs to another game is dropped.
func (s *Store) SetCurrentGame(gameID string) {
	s.update(func() []Event {
		if gameID != "" && !s.hasGame(gameID) {
			s.log.WithField("game_id", gameID).Warn("SetCurrentGame: unknown game, ignoring")
			return nil
		}
		s.currentGameID = gameID
		s.currentClipID = ""

		events := []Event{GameChangedEvent{GameID: gameID}}
		if s.playlistFilter != "" {
			i := s.playlistIndex(s.playlistFilter)
			if i < 0 || s.project.Playlists[i].GameID != gameID {
				s.playlistFilter = ""
				events = append(events, ViewFiltersChangedEvent{Criteria: s.criteria()})
			}
		}
		return events
	})
}

// SelectClip makes a clip current; an empty id clears the selection
func (s *Store) SelectClip(clipID string) {
	s.update(func() []Event {
		if clipID != "" && s.clipIndex(clipID) < 0 {
			s.log.WithField("clip_id", clipID).Warn("SelectClip: unknown clip, ignoring")
			return nil
		}
		s.currentClipID = clipID
		return []Event{ClipChangedEvent{ClipID: clipID}}
	})
}

// NavigateClip moves the selection to the previous or next visible clip. It
// stops at either end and does nothing when the current clip is not visible.
func (s *Store) NavigateClip(dir filter.Direction) error {
	return s.updateChecked(func() ([]Event, error) {
		if !dir.Valid() {
			return nil, apperrors.ValidationError("direction", "must be prev or next")
		}
		next, ok := filter.Step(s.visible(), s.currentClipID, dir)
		if !ok {
			return nil, nil
		}
		s.currentClipID = next
		return []Event{ClipChangedEvent{ClipID: next}}, nil
	})
}

// SetMode switches between analyze and view. Analyze is refused in read-only mode.
func (s *Store) SetMode(mode Mode) error {
	return s.updateChecked(func() ([]Event, error) {
		if !mode.Valid() {
			return nil, apperrors.ValidationError("mode", "must be analyze or view")
		}
		if mode == ModeAnalyze && s.readOnly {
			return nil, apperrors.PermissionDenied("SetMode")
		}
		if s.mode == mode {
			return nil, nil
		}
		s.mode = mode
		return []Event{ModeChangedEvent{Mode: mode}}, nil
	})
}

func (s *Store) TogglePanel() {
	s.update(func() []Event {
		s.panelCollapsed = !s.panelCollapsed
		return []Event{PanelToggledEvent{Collapsed: s.panelCollapsed}}
	})
}

func (s *Store) ToggleFocusView() {
	s.update(func() []Event {
		s.focusView = !s.focusView
		return []Event{FocusViewToggledEvent{Enabled: s.focusView}}
	})
}

// ToggleTagFilter adds or removes a tag type from the tag filter
func (s *Store) ToggleTagFilter(tagTypeID string) {
	s.update(func() []Event {
		s.tagFilters = toggle(s.tagFilters, tagTypeID)
		return []Event{ViewFiltersChangedEvent{Criteria: s.criteria()}}
	})
}

// ToggleFilterFlag adds or removes a flag from the flag filter
func (s *Store) ToggleFilterFlag(flag models.Flag) error {
	return s.updateChecked(func() ([]Event, error) {
		if !flag.Valid() {
			return nil, apperrors.ValidationError("flag", "unknown flag "+string(flag))
		}
		s.flagFilters = toggle(s.flagFilters, flag)
		return []Event{ViewFiltersChangedEvent{Criteria: s.criteria()}}, nil
	})
}

func (s *Store) ClearFilterFlags() {
	s.update(func() []Event {
		s.flagFilters = nil
		return []Event{ViewFiltersChangedEvent{Criteria: s.criteria()}}
	})
}

// ClearAllFilters drops the tag, flag and playlist filters
func (s *Store) ClearAllFilters() {
	s.update(func() []Event {
		s.tagFilters = nil
		s.flagFilters = nil
		s.playlistFilter = ""
		return []Event{ViewFiltersChangedEvent{Criteria: s.criteria()}}
	})
}

// SetPlaylistFilter restricts the view to one playlist; an empty id clears it.
// The playlist's game becomes the current game, so a link naming only a
// playlist shows its clips.
func (s *Store) SetPlaylistFilter(playlistID string) {
	s.update(func() []Event {
		if playlistID == "" {
			s.playlistFilter = ""
			return []Event{ViewFiltersChangedEvent{Criteria: s.criteria()}}
		}

		i := s.playlistIndex(playlistID)
		if i < 0 {
			s.log.WithField("playlist_id", playlistID).Warn("SetPlaylistFilter: unknown playlist, ignoring")
			return nil
		}

		var events []Event
		if gameID := s.project.Playlists[i].GameID; gameID != "" && gameID != s.currentGameID && s.hasGame(gameID) {
			s.currentGameID = gameID
			s.currentClipID = ""
			events = append(events, GameChangedEvent{GameID: gameID})
		}
		s.playlistFilter = playlistID
		return append(events, ViewFiltersChangedEvent{Criteria: s.criteria()})
	})
}

func toggle[T comparable](set []T, v T) []T {
	for i, x := range set {
		if x == v {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	return append(set, v)
}
