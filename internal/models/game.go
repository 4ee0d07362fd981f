package models

// Game is a recorded event whose video is annotated with clips
type Game struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	VideoRef string `json:"video_ref"`
}

// TagType is a user-defined clip category, optionally bound to a single-key shortcut
type TagType struct {
	ID     string `json:"id" validate:"required"`
	Label  string `json:"label" validate:"required"`
	Hotkey string `json:"hotkey,omitempty" validate:"omitempty,len=1"`
}
