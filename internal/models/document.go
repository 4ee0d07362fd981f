package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Document is the wire form of a Project in the remote document store.
// On a merge, null collections and empty strings leave the stored value alone;
// an empty collection replaces it.
type Document struct {
	ID            string               `json:"id,omitempty"`
	Title         string               `json:"title,omitempty"`
	VideoRef      string               `json:"video_ref,omitempty"`
	TagTypes      []TagType            `json:"tagTypes" validate:"omitempty,dive"`
	Games         []Game               `json:"games" validate:"omitempty,dive"`
	Clips         []Clip               `json:"clips" validate:"omitempty,dive"`
	Playlists     []Playlist           `json:"playlists" validate:"omitempty,dive"`
	PlaylistItems map[string][]string  `json:"playlistItems"`
	ClipFlags     map[string][]Flag    `json:"clipFlags" validate:"omitempty,dive,dive,oneof=bueno acorregir duda importante"`
	ClipComments  map[string][]Comment `json:"clipComments" validate:"omitempty,dive,dive"`
	CreatedAt     *time.Time           `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time           `json:"updatedAt,omitempty"`
}

// Validate checks the structural rules of every entity carried by the document
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	return nil
}

// Summary is the listing view of a stored document
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	VideoRef  string    `json:"video_ref"`
	UpdatedAt time.Time `json:"updatedAt"`
	Shared    bool      `json:"shared"`
}

// ChangeNotice is pushed to watchers when a stored document changes
type ChangeNotice struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
}
