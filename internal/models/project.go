package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProjectTitle is used when a project is saved without a title
const DefaultProjectTitle = "Sin título"

// Project is the durable aggregate of one analysis session. ID stays empty
// until the first successful save.
type Project struct {
	ID            string
	Title         string
	VideoRef      string
	TagTypes      []TagType
	Games         []Game
	Clips         []Clip
	Playlists     []Playlist
	PlaylistItems map[string][]string
	ClipFlags     map[string][]Flag
	Comments      map[string][]Comment
	UpdatedAt     time.Time
}

// Clone returns a deep copy so callers never share slices with the store
func (p Project) Clone() Project {
	out := p
	out.TagTypes = append([]TagType(nil), p.TagTypes...)
	out.Games = append([]Game(nil), p.Games...)
	out.Clips = append([]Clip(nil), p.Clips...)
	out.Playlists = append([]Playlist(nil), p.Playlists...)
	out.PlaylistItems = make(map[string][]string, len(p.PlaylistItems))
	for k, v := range p.PlaylistItems {
		out.PlaylistItems[k] = append([]string(nil), v...)
	}
	out.ClipFlags = make(map[string][]Flag, len(p.ClipFlags))
	for k, v := range p.ClipFlags {
		out.ClipFlags[k] = append([]Flag(nil), v...)
	}
	out.Comments = make(map[string][]Comment, len(p.Comments))
	for k, v := range p.Comments {
		out.Comments[k] = append([]Comment(nil), v...)
	}
	return out
}

// FindGame returns the game with the given id
func (p Project) FindGame(id string) (Game, bool) {
	for _, g := range p.Games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}

// NewID returns a fresh entity id with a readable prefix, e.g. "clip-6f1c..."
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
