package store

import (
	"github.com/simplereplay/replay/internal/filter"
	"github.com/simplereplay/replay/internal/models"
)

// Accessors never fail: they return copies, or zero values when nothing is set.

func (s *Store) Games() []models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Game{}, s.project.Games...)
}

func (s *Store) Clips() []models.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Clip{}, s.project.Clips...)
}

func (s *Store) TagTypes() []models.TagType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TagType{}, s.project.TagTypes...)
}

func (s *Store) Playlists() []models.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Playlist{}, s.project.Playlists...)
}

// PlaylistItems returns the ordered items of one playlist
func (s *Store) PlaylistItems(playlistID string) []models.PlaylistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.ItemsFromOrder(playlistID, s.project.PlaylistItems[playlistID])
}

// ClipFlags returns the flags of a clip in display order
func (s *Store) ClipFlags(clipID string) []models.Flag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SortFlags(s.project.ClipFlags[clipID])
}

func (s *Store) Comments(clipID string) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Comment{}, s.project.Comments[clipID]...)
}

// CurrentProjectID is empty until the project has been saved or loaded
func (s *Store) CurrentProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.ID
}

func (s *Store) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.Title
}

// CurrentGame returns the selected game, if any
func (s *Store) CurrentGame() (models.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentGameID == "" {
		return models.Game{}, false
	}
	return s.project.FindGame(s.currentGameID)
}

// CurrentClip returns the selected clip, if any
func (s *Store) CurrentClip() (models.Clip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.clipIndex(s.currentClipID); i >= 0 && s.currentClipID != "" {
		return s.project.Clips[i], true
	}
	return models.Clip{}, false
}

func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Store) PanelCollapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panelCollapsed
}

func (s *Store) FocusView() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focusView
}

// Filters returns the active view filters, scoped to the current game
func (s *Store) Filters() filter.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria()
}

// VisibleClips evaluates the current filters against the current clips
func (s *Store) VisibleClips() []models.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible()
}

func (s *Store) ReadOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readOnly
}

// Snapshot returns a deep copy of the current project
func (s *Store) Snapshot() models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.Clone()
}
