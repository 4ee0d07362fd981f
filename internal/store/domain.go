package store

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/simplereplay/replay/pkg/errors"
	"github.com/simplereplay/replay/pkg/videoref"

	"github.com/simplereplay/replay/internal/models"
)

// AddGame creates a game. The video reference may be a full URL; it is reduced
// to the video id.
func (s *Store) AddGame(title, videoRef string) (models.Game, error) {
	title = strings.TrimSpace(title)
	ref := videoref.Extract(videoRef)

	var game models.Game
	err := s.mutateDomain("AddGame", func() ([]Event, error) {
		if title == "" {
			return nil, apperrors.MissingFieldError("title")
		}
		if ref == "" {
			return nil, apperrors.MissingFieldError("video_ref")
		}
		game = models.Game{ID: models.NewID("game"), Title: title, VideoRef: ref}
		s.project.Games = append(s.project.Games, game)
		if s.project.VideoRef == "" {
			s.project.VideoRef = ref
		}
		return []Event{GamesUpdatedEvent{}}, nil
	})
	return game, err
}

// RemoveGame deletes a game together with its clips and playlists
func (s *Store) RemoveGame(id string) error {
	return s.mutateDomain("RemoveGame", func() ([]Event, error) {
		if !s.hasGame(id) {
			s.log.WithField("game_id", id).Warn("RemoveGame: unknown game, ignoring")
			return nil, nil
		}

		games := s.project.Games[:0:0]
		for _, g := range s.project.Games {
			if g.ID != id {
				games = append(games, g)
			}
		}
		s.project.Games = games

		clips := s.project.Clips[:0:0]
		for _, c := range s.project.Clips {
			if c.GameID == id {
				s.dropClipData(c.ID)
				continue
			}
			clips = append(clips, c)
		}
		s.project.Clips = clips

		playlists := s.project.Playlists[:0:0]
		for _, p := range s.project.Playlists {
			if p.GameID == id {
				delete(s.project.PlaylistItems, p.ID)
				if s.playlistFilter == p.ID {
					s.playlistFilter = ""
				}
				continue
			}
			playlists = append(playlists, p)
		}
		s.project.Playlists = playlists
		s.pruneDanglingItems()

		events := []Event{GamesUpdatedEvent{}, ClipsUpdatedEvent{}, PlaylistsUpdatedEvent{}}
		if s.currentGameID == id {
			s.currentGameID = ""
			if len(s.project.Games) > 0 {
				s.currentGameID = s.project.Games[0].ID
			}
			s.currentClipID = ""
			events = append(events, GameChangedEvent{GameID: s.currentGameID})
		}
		return events, nil
	})
}

// SetTitle renames the project
func (s *Store) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	return s.mutateDomain("SetTitle", func() ([]Event, error) {
		if title == "" {
			return nil, apperrors.MissingFieldError("title")
		}
		s.project.Title = title
		return []Event{TitleChangedEvent{Title: title}}, nil
	})
}

// AddTagType creates a clip category. Hotkeys are a single character and unique.
func (s *Store) AddTagType(label, hotkey string) (models.TagType, error) {
	label = strings.TrimSpace(label)

	var tag models.TagType
	err := s.mutateDomain("AddTagType", func() ([]Event, error) {
		if label == "" {
			return nil, apperrors.MissingFieldError("label")
		}
		if utf8.RuneCountInString(hotkey) > 1 {
			return nil, apperrors.ValidationError("hotkey", "must be a single character")
		}
		if hotkey != "" {
			for _, t := range s.project.TagTypes {
				if t.Hotkey == hotkey {
					return nil, apperrors.ValidationError("hotkey", "already bound to "+t.Label)
				}
			}
		}
		tag = models.TagType{ID: models.NewID("tag"), Label: label, Hotkey: hotkey}
		s.project.TagTypes = append(s.project.TagTypes, tag)
		return []Event{TagTypesUpdatedEvent{}}, nil
	})
	return tag, err
}

// AddClip records a clip on a game. An empty gameID means the current game.
// Bounds are clamped to a valid range.
func (s *Store) AddClip(gameID, tagTypeID string, startSec, endSec float64) (models.Clip, error) {
	var clip models.Clip
	err := s.mutateDomain("AddClip", func() ([]Event, error) {
		if gameID == "" {
			gameID = s.currentGameID
		}
		if gameID == "" {
			return nil, apperrors.MissingFieldError("game_id")
		}
		if !s.hasGame(gameID) {
			return nil, apperrors.ValidationError("game_id", "unknown game "+gameID)
		}
		if tagTypeID != "" && !s.hasTagType(tagTypeID) {
			return nil, apperrors.ValidationError("tag_type_id", "unknown tag type "+tagTypeID)
		}

		start, end := models.ClampBounds(startSec, endSec)
		clip = models.Clip{
			ID:        models.NewID("clip"),
			GameID:    gameID,
			TagTypeID: tagTypeID,
			StartSec:  start,
			EndSec:    end,
		}
		s.project.Clips = append(s.project.Clips, clip)
		return []Event{ClipsUpdatedEvent{}}, nil
	})
	return clip, err
}

// UpdateClipBounds moves one bound of a clip by delta seconds. The moved bound
// is clamped so the clip keeps a non-negative start and the minimum duration.
// An unknown clip id is logged and ignored.
func (s *Store) UpdateClipBounds(clipID string, field models.BoundField, delta float64) error {
	return s.mutateDomain("UpdateClipBounds", func() ([]Event, error) {
		if !field.Valid() {
			return nil, apperrors.ValidationError("field", "must be start_sec or end_sec")
		}
		i := s.clipIndex(clipID)
		if i < 0 {
			s.log.WithField("clip_id", clipID).Warn("UpdateClipBounds: unknown clip, ignoring")
			return nil, nil
		}
		s.project.Clips[i] = s.project.Clips[i].Adjust(field, delta)

		events := []Event{ClipsUpdatedEvent{}}
		if clipID == s.currentClipID {
			events = append(events, ClipChangedEvent{ClipID: clipID})
		}
		return events, nil
	})
}

// DeleteClip removes a clip, its flags and comments, and its playlist entries
func (s *Store) DeleteClip(clipID string) error {
	return s.mutateDomain("DeleteClip", func() ([]Event, error) {
		i := s.clipIndex(clipID)
		if i < 0 {
			s.log.WithField("clip_id", clipID).Warn("DeleteClip: unknown clip, ignoring")
			return nil, nil
		}
		wasCurrent := s.currentClipID == clipID
		s.project.Clips = append(s.project.Clips[:i:i], s.project.Clips[i+1:]...)
		s.dropClipData(clipID)

		events := []Event{ClipsUpdatedEvent{}}
		if s.pruneDanglingItems() {
			events = append(events, PlaylistsUpdatedEvent{})
		}
		if wasCurrent {
			events = append(events, ClipChangedEvent{})
		}
		return events, nil
	})
}

// ToggleFlag adds the flag to the clip when absent and removes it when present.
// Unknown flag names are rejected; an unknown clip id is ignored.
func (s *Store) ToggleFlag(clipID string, flag models.Flag) error {
	return s.mutateDomain("ToggleFlag", func() ([]Event, error) {
		if !flag.Valid() {
			return nil, apperrors.ValidationError("flag", "unknown flag "+string(flag))
		}
		if s.clipIndex(clipID) < 0 {
			s.log.WithField("clip_id", clipID).Warn("ToggleFlag: unknown clip, ignoring")
			return nil, nil
		}

		current := s.project.ClipFlags[clipID]
		next := make([]models.Flag, 0, len(current)+1)
		found := false
		for _, f := range current {
			if f == flag {
				found = true
				continue
			}
			next = append(next, f)
		}
		if !found {
			next = append(next, flag)
		}
		next = models.SortFlags(next)

		if len(next) == 0 {
			delete(s.project.ClipFlags, clipID)
		} else {
			s.project.ClipFlags[clipID] = next
		}
		return []Event{FlagsUpdatedEvent{ClipID: clipID, Flags: append([]models.Flag{}, next...)}}, nil
	})
}

// AddPlaylist creates an empty playlist on the current game
func (s *Store) AddPlaylist(name string) (models.Playlist, error) {
	name = strings.TrimSpace(name)

	var pl models.Playlist
	err := s.mutateDomain("AddPlaylist", func() ([]Event, error) {
		if name == "" {
			return nil, apperrors.MissingFieldError("name")
		}
		if s.currentGameID == "" {
			return nil, apperrors.ValidationError("game_id", "select a game before creating a playlist")
		}
		pl = models.Playlist{ID: models.NewID("pl"), Name: name, GameID: s.currentGameID}
		s.project.Playlists = append(s.project.Playlists, pl)
		s.project.PlaylistItems[pl.ID] = []string{}
		return []Event{PlaylistsUpdatedEvent{}}, nil
	})
	return pl, err
}

// AddToPlaylist appends clips to a playlist. Unknown and already present clips are skipped.
func (s *Store) AddToPlaylist(playlistID string, clipIDs ...string) error {
	return s.mutateDomain("AddToPlaylist", func() ([]Event, error) {
		if s.playlistIndex(playlistID) < 0 {
			s.log.WithField("playlist_id", playlistID).Warn("AddToPlaylist: unknown playlist, ignoring")
			return nil, nil
		}
		items := s.project.PlaylistItems[playlistID]
		present := make(map[string]bool, len(items))
		for _, id := range items {
			present[id] = true
		}

		added := 0
		for _, id := range clipIDs {
			if present[id] || s.clipIndex(id) < 0 {
				continue
			}
			items = append(items, id)
			present[id] = true
			added++
		}
		if added == 0 {
			return nil, nil
		}
		s.project.PlaylistItems[playlistID] = items
		return []Event{PlaylistsUpdatedEvent{}}, nil
	})
}

// RemoveFromPlaylist drops one clip from a playlist, keeping the order of the rest
func (s *Store) RemoveFromPlaylist(playlistID, clipID string) error {
	return s.mutateDomain("RemoveFromPlaylist", func() ([]Event, error) {
		items := s.project.PlaylistItems[playlistID]
		for i, id := range items {
			if id == clipID {
				s.project.PlaylistItems[playlistID] = append(items[:i:i], items[i+1:]...)
				return []Event{PlaylistsUpdatedEvent{}}, nil
			}
		}
		return nil, nil
	})
}

// DeletePlaylist removes a playlist. An active filter on it is cleared.
func (s *Store) DeletePlaylist(playlistID string) error {
	return s.mutateDomain("DeletePlaylist", func() ([]Event, error) {
		i := s.playlistIndex(playlistID)
		if i < 0 {
			s.log.WithField("playlist_id", playlistID).Warn("DeletePlaylist: unknown playlist, ignoring")
			return nil, nil
		}
		s.project.Playlists = append(s.project.Playlists[:i:i], s.project.Playlists[i+1:]...)
		delete(s.project.PlaylistItems, playlistID)

		events := []Event{PlaylistsUpdatedEvent{}}
		if s.playlistFilter == playlistID {
			s.playlistFilter = ""
			events = append(events, ViewFiltersChangedEvent{Criteria: s.criteria()})
		}
		return events, nil
	})
}

// AddComment appends a comment to a clip. Comments are allowed in read-only
// mode so viewers of a shared project can leave notes.
func (s *Store) AddComment(clipID, author, text string) error {
	text = strings.TrimSpace(text)
	author = strings.TrimSpace(author)

	return s.updateChecked(func() ([]Event, error) {
		if text == "" {
			return nil, apperrors.MissingFieldError("text")
		}
		if s.clipIndex(clipID) < 0 {
			s.log.WithField("clip_id", clipID).Warn("AddComment: unknown clip, ignoring")
			return nil, nil
		}
		c := models.Comment{ClipID: clipID, Author: author, Text: text, CreatedAt: time.Now().UTC()}
		s.project.Comments[clipID] = append(s.project.Comments[clipID], c)
		return []Event{ClipCommentsUpdatedEvent{ClipID: clipID}, CommentAddedEvent{Comment: c}}, nil
	})
}

func (s *Store) hasTagType(id string) bool {
	for _, t := range s.project.TagTypes {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) dropClipData(clipID string) {
	delete(s.project.ClipFlags, clipID)
	delete(s.project.Comments, clipID)
	if s.currentClipID == clipID {
		s.currentClipID = ""
	}
}

// pruneDanglingItems removes playlist entries whose clip no longer exists and
// reports whether anything changed
func (s *Store) pruneDanglingItems() bool {
	exists := make(map[string]bool, len(s.project.Clips))
	for _, c := range s.project.Clips {
		exists[c.ID] = true
	}

	changed := false
	for pl, items := range s.project.PlaylistItems {
		kept := items[:0:0]
		for _, id := range items {
			if exists[id] {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(items) {
			s.project.PlaylistItems[pl] = kept
			changed = true
		}
	}
	return changed
}
