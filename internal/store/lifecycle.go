package store

import "github.com/simplereplay/replay/internal/models"

// ReplaceProject swaps the whole project in one step, as after a load. Unsaved
// edits are discarded, view filters are reset and the first game is selected.
func (s *Store) ReplaceProject(p models.Project) {
	s.update(func() []Event {
		s.project = normalize(p.Clone())
		s.currentGameID = ""
		if len(s.project.Games) > 0 {
			s.currentGameID = s.project.Games[0].ID
		}
		s.currentClipID = ""
		s.tagFilters = nil
		s.flagFilters = nil
		s.playlistFilter = ""
		return []Event{ProjectLoadedEvent{ProjectID: s.project.ID}}
	})
}

// MarkSaved records the id assigned by the document store
func (s *Store) MarkSaved(projectID string) {
	s.update(func() []Event {
		s.project.ID = projectID
		return []Event{ProjectSavedEvent{ProjectID: projectID}}
	})
}

// Clear empties the project and the selection. Read-only mode survives.
// ProjectCleared is delivered last, after the list updates.
func (s *Store) Clear() {
	s.update(func() []Event {
		s.project = normalize(models.Project{})
		s.currentGameID = ""
		s.currentClipID = ""
		s.tagFilters = nil
		s.flagFilters = nil
		s.playlistFilter = ""
		return []Event{
			GamesUpdatedEvent{}, TagTypesUpdatedEvent{}, ClipsUpdatedEvent{}, PlaylistsUpdatedEvent{},
			ProjectClearedEvent{},
		}
	})
}

// SetReadOnly switches the store to read-only mode for the rest of the
// session. The mode is forced to view.
func (s *Store) SetReadOnly() {
	s.update(func() []Event {
		if s.readOnly {
			return nil
		}
		s.readOnly = true
		if s.mode != ModeView {
			s.mode = ModeView
			return []Event{ModeChangedEvent{Mode: ModeView}}
		}
		return nil
	})
}
