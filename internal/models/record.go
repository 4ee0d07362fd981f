package models

import "time"

// ProjectRecord is the persisted row behind a Document
type ProjectRecord struct {
	ID            string               `gorm:"primaryKey;size:64"`
	Title         string               `gorm:"not null;default:''"`
	VideoRef      string               `gorm:"column:video_ref"`
	TagTypes      []TagType            `gorm:"type:text;serializer:json"`
	Games         []Game               `gorm:"type:text;serializer:json"`
	Clips         []Clip               `gorm:"type:text;serializer:json"`
	Playlists     []Playlist           `gorm:"type:text;serializer:json"`
	PlaylistItems map[string][]string  `gorm:"type:text;serializer:json"`
	ClipFlags     map[string][]Flag    `gorm:"type:text;serializer:json"`
	ClipComments  map[string][]Comment `gorm:"type:text;serializer:json"`
	CreatedAt     time.Time
	UpdatedAt     time.Time `gorm:"index"`
}

// TableName returns the table name for the ProjectRecord model
func (ProjectRecord) TableName() string {
	return "projects"
}

// ToDocument converts the stored row to its wire form
func (r ProjectRecord) ToDocument() *Document {
	created, updated := r.CreatedAt, r.UpdatedAt
	return &Document{
		ID:            r.ID,
		Title:         r.Title,
		VideoRef:      r.VideoRef,
		TagTypes:      r.TagTypes,
		Games:         r.Games,
		Clips:         r.Clips,
		Playlists:     r.Playlists,
		PlaylistItems: r.PlaylistItems,
		ClipFlags:     r.ClipFlags,
		ClipComments:  r.ClipComments,
		CreatedAt:     &created,
		UpdatedAt:     &updated,
	}
}

// Merge copies every field the document specifies onto the record
func (r *ProjectRecord) Merge(d *Document) {
	if d.Title != "" {
		r.Title = d.Title
	}
	if d.VideoRef != "" {
		r.VideoRef = d.VideoRef
	}
	if d.TagTypes != nil {
		r.TagTypes = d.TagTypes
	}
	if d.Games != nil {
		r.Games = d.Games
	}
	if d.Clips != nil {
		r.Clips = d.Clips
	}
	if d.Playlists != nil {
		r.Playlists = d.Playlists
	}
	if d.PlaylistItems != nil {
		r.PlaylistItems = d.PlaylistItems
	}
	if d.ClipFlags != nil {
		r.ClipFlags = d.ClipFlags
	}
	if d.ClipComments != nil {
		r.ClipComments = d.ClipComments
	}
}

// LocalProject remembers a project id this profile created or opened
type LocalProject struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Shared    bool      `json:"shared" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the LocalProject model
func (LocalProject) TableName() string {
	return "local_projects"
}
