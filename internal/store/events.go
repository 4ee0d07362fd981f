package store

import (
	"github.com/simplereplay/replay/internal/filter"
	"github.com/simplereplay/replay/internal/models"
)

// EventKind identifies a category of state change
type EventKind int

const (
	ClipChanged EventKind = iota + 1
	ClipsUpdated
	PlaylistsUpdated
	FlagsUpdated
	GameChanged
	GamesUpdated
	ModeChanged
	PanelToggled
	FocusViewToggled
	ViewFiltersChanged
	TagTypesUpdated
	ClipCommentsUpdated
	CommentAdded
	TitleChanged
	ProjectLoaded
	ProjectSaved
	ProjectCleared
)

var kindNames = map[EventKind]string{
	ClipChanged:         "clipChanged",
	ClipsUpdated:        "clipsUpdated",
	PlaylistsUpdated:    "playlistsUpdated",
	FlagsUpdated:        "flagsUpdated",
	GameChanged:         "gameChanged",
	GamesUpdated:        "gamesUpdated",
	ModeChanged:         "modeChanged",
	PanelToggled:        "panelToggled",
	FocusViewToggled:    "focusViewToggled",
	ViewFiltersChanged:  "viewFiltersChanged",
	TagTypesUpdated:     "tagTypesUpdated",
	ClipCommentsUpdated: "clipCommentsUpdated",
	CommentAdded:        "commentAdded",
	TitleChanged:        "titleChanged",
	ProjectLoaded:       "projectLoaded",
	ProjectSaved:        "projectSaved",
	ProjectCleared:      "projectCleared",
}

func (k EventKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// EditKinds are the events that change saved data. The dirty tracker and the
// CLI watch them.
var EditKinds = []EventKind{
	ClipChanged, ClipsUpdated, PlaylistsUpdated, FlagsUpdated, GamesUpdated,
	TagTypesUpdated, ClipCommentsUpdated, CommentAdded, TitleChanged,
}

// Event is implemented by every payload delivered to handlers
type Event interface {
	Kind() EventKind
}

// Handler receives events synchronously on the goroutine that caused them
type Handler func(Event)

type ClipChangedEvent struct{ ClipID string }

type ClipsUpdatedEvent struct{}

type PlaylistsUpdatedEvent struct{}

type FlagsUpdatedEvent struct {
	ClipID string
	Flags  []models.Flag
}

type GameChangedEvent struct{ GameID string }

type GamesUpdatedEvent struct{}

type ModeChangedEvent struct{ Mode Mode }

type PanelToggledEvent struct{ Collapsed bool }

type FocusViewToggledEvent struct{ Enabled bool }

type ViewFiltersChangedEvent struct{ Criteria filter.Criteria }

type TagTypesUpdatedEvent struct{}

type ClipCommentsUpdatedEvent struct{ ClipID string }

type CommentAddedEvent struct{ Comment models.Comment }

type TitleChangedEvent struct{ Title string }

type ProjectLoadedEvent struct{ ProjectID string }

// ProjectSavedEvent is delivered on the write lane goroutine that finished the
// save, not on the goroutine that called SaveToCloud or AddComment. After a
// comment auto-save it can arrive while other goroutines mutate the store.
// Handlers must not assume they run in order with the caller's mutations.
type ProjectSavedEvent struct{ ProjectID string }

// ProjectClearedEvent follows Clear; the store holds no project and no edits
type ProjectClearedEvent struct{}

func (ClipChangedEvent) Kind() EventKind         { return ClipChanged }
func (ClipsUpdatedEvent) Kind() EventKind        { return ClipsUpdated }
func (PlaylistsUpdatedEvent) Kind() EventKind    { return PlaylistsUpdated }
func (FlagsUpdatedEvent) Kind() EventKind        { return FlagsUpdated }
func (GameChangedEvent) Kind() EventKind         { return GameChanged }
func (GamesUpdatedEvent) Kind() EventKind        { return GamesUpdated }
func (ModeChangedEvent) Kind() EventKind         { return ModeChanged }
func (PanelToggledEvent) Kind() EventKind        { return PanelToggled }
func (FocusViewToggledEvent) Kind() EventKind    { return FocusViewToggled }
func (ViewFiltersChangedEvent) Kind() EventKind  { return ViewFiltersChanged }
func (TagTypesUpdatedEvent) Kind() EventKind     { return TagTypesUpdated }
func (ClipCommentsUpdatedEvent) Kind() EventKind { return ClipCommentsUpdated }
func (CommentAddedEvent) Kind() EventKind        { return CommentAdded }
func (TitleChangedEvent) Kind() EventKind        { return TitleChanged }
func (ProjectLoadedEvent) Kind() EventKind       { return ProjectLoaded }
func (ProjectSavedEvent) Kind() EventKind        { return ProjectSaved }
func (ProjectClearedEvent) Kind() EventKind      { return ProjectCleared }
