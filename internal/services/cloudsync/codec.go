package cloudsync

import (
	"time"

	"github.com/simplereplay/replay/internal/models"
)

// ToDocument converts a project snapshot to its wire form. Every collection
// is non-nil so a merge replaces the stored value instead of keeping it.
func ToDocument(p models.Project) *models.Document {
	title := p.Title
	if title == "" {
		title = models.DefaultProjectTitle
	}
	videoRef := p.VideoRef
	if videoRef == "" && len(p.Games) > 0 {
		videoRef = p.Games[0].VideoRef
	}

	doc := &models.Document{
		ID:            p.ID,
		Title:         title,
		VideoRef:      videoRef,
		TagTypes:      orEmpty(p.TagTypes),
		Games:         orEmpty(p.Games),
		Clips:         orEmpty(p.Clips),
		Playlists:     orEmpty(p.Playlists),
		PlaylistItems: make(map[string][]string, len(p.PlaylistItems)),
		ClipFlags:     make(map[string][]models.Flag, len(p.ClipFlags)),
		ClipComments:  make(map[string][]models.Comment, len(p.Comments)),
	}
	for k, v := range p.PlaylistItems {
		doc.PlaylistItems[k] = orEmpty(v)
	}
	for k, v := range p.ClipFlags {
		if len(v) > 0 {
			doc.ClipFlags[k] = models.SortFlags(v)
		}
	}
	for k, v := range p.Comments {
		if len(v) > 0 {
			doc.ClipComments[k] = append([]models.Comment{}, v...)
		}
	}
	return doc
}

// FromDocument converts a fetched document into a project ready for the store
func FromDocument(d *models.Document) models.Project {
	p := models.Project{
		ID:            d.ID,
		Title:         d.Title,
		VideoRef:      d.VideoRef,
		TagTypes:      append([]models.TagType(nil), d.TagTypes...),
		Games:         append([]models.Game(nil), d.Games...),
		Clips:         append([]models.Clip(nil), d.Clips...),
		Playlists:     append([]models.Playlist(nil), d.Playlists...),
		PlaylistItems: make(map[string][]string, len(d.PlaylistItems)),
		ClipFlags:     make(map[string][]models.Flag, len(d.ClipFlags)),
		Comments:      make(map[string][]models.Comment, len(d.ClipComments)),
	}
	for k, v := range d.PlaylistItems {
		p.PlaylistItems[k] = append([]string{}, v...)
	}
	for k, v := range d.ClipFlags {
		// unknown flags are dropped
		if flags := models.SortFlags(v); len(flags) > 0 {
			p.ClipFlags[k] = flags
		}
	}
	for k, v := range d.ClipComments {
		p.Comments[k] = append([]models.Comment(nil), v...)
	}
	if d.UpdatedAt != nil {
		p.UpdatedAt = *d.UpdatedAt
	}
	return p
}

// summarize builds the listing entry for a fetched document
func summarize(d *models.Document, shared bool) models.Summary {
	title := d.Title
	if title == "" {
		title = models.DefaultProjectTitle
	}
	var updated time.Time
	if d.UpdatedAt != nil {
		updated = *d.UpdatedAt
	}
	return models.Summary{
		ID:        d.ID,
		Title:     title,
		VideoRef:  d.VideoRef,
		UpdatedAt: updated,
		Shared:    shared,
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
