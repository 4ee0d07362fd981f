package models

import "time"

// Playlist is a named, ordered subset of one game's clips
type Playlist struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	GameID string `json:"game_id"`
}

// PlaylistItem places a clip at a position inside a playlist
type PlaylistItem struct {
	PlaylistID string `json:"playlist_id"`
	ClipID     string `json:"clip_id"`
	Order      int    `json:"order"`
}

// ItemsFromOrder expands an ordered clip id list into playlist items
func ItemsFromOrder(playlistID string, clipIDs []string) []PlaylistItem {
	items := make([]PlaylistItem, len(clipIDs))
	for i, id := range clipIDs {
		items[i] = PlaylistItem{PlaylistID: playlistID, ClipID: id, Order: i}
	}
	return items
}

// Comment is an append-only note left on a clip
type Comment struct {
	ClipID    string    `json:"clip_id" validate:"required"`
	Author    string    `json:"author"`
	Text      string    `json:"text" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}
