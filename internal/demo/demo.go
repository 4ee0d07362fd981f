// Package demo holds the demonstration project shown when the CLI starts
// without a project link.
package demo

import "github.com/simplereplay/replay/internal/models"

// GameID identifies the demonstration game. The sync engine drops it on the
// first save once the user has added a game of their own.
const GameID = "game-demo-1"

// Project returns a fresh copy of the demonstration project
func Project() models.Project {
	return models.Project{
		Title:    "Demo",
		VideoRef: "M7lc1UVf-VE",
		TagTypes: []models.TagType{
			{ID: "tag-demo-attack", Label: "Ataque", Hotkey: "a"},
			{ID: "tag-demo-defense", Label: "Defensa", Hotkey: "d"},
			{ID: "tag-demo-setpiece", Label: "Balón parado", Hotkey: "b"},
		},
		Games: []models.Game{
			{ID: GameID, Title: "Partido de demostración", VideoRef: "M7lc1UVf-VE"},
		},
		Clips: []models.Clip{
			{ID: "clip-demo-1", GameID: GameID, TagTypeID: "tag-demo-attack", StartSec: 12, EndSec: 24},
			{ID: "clip-demo-2", GameID: GameID, TagTypeID: "tag-demo-defense", StartSec: 41.5, EndSec: 50},
			{ID: "clip-demo-3", GameID: GameID, TagTypeID: "tag-demo-setpiece", StartSec: 78, EndSec: 90},
			{ID: "clip-demo-4", GameID: GameID, TagTypeID: "tag-demo-attack", StartSec: 132, EndSec: 141},
		},
		Playlists: []models.Playlist{
			{ID: "playlist-demo-1", Name: "Lo mejor", GameID: GameID},
		},
		PlaylistItems: map[string][]string{
			"playlist-demo-1": {"clip-demo-4", "clip-demo-1"},
		},
		ClipFlags: map[string][]models.Flag{
			"clip-demo-1": {models.FlagGood},
			"clip-demo-2": {models.FlagToFix, models.FlagDoubt},
			"clip-demo-4": {models.FlagImportant},
		},
	}
}
