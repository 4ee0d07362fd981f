package models

import "math"

// MinClipDuration is the shortest a clip may become after a bounds adjustment, in seconds
const MinClipDuration = 0.5

// BoundField names the clip bound targeted by an adjustment
type BoundField string

const (
	BoundStart BoundField = "start_sec"
	BoundEnd   BoundField = "end_sec"
)

// Valid reports whether the field is one of the two clip bounds
func (b BoundField) Valid() bool {
	return b == BoundStart || b == BoundEnd
}

// Clip is a time-bounded excerpt of a game's video
type Clip struct {
	ID        string  `json:"id" validate:"required"`
	GameID    string  `json:"game_id" validate:"required"`
	TagTypeID string  `json:"tag_type_id,omitempty"`
	StartSec  float64 `json:"start_sec" validate:"gte=0"`
	EndSec    float64 `json:"end_sec" validate:"gtfield=StartSec"`
}

// Duration returns the clip length in seconds
func (c Clip) Duration() float64 {
	return c.EndSec - c.StartSec
}

// ClampBounds returns start and end adjusted so that start >= 0 and
// end - start >= MinClipDuration. When the start has to move, the end wins.
func ClampBounds(start, end float64) (float64, float64) {
	start = math.Max(0, start)
	if end-start < MinClipDuration {
		end = start + MinClipDuration
	}
	return start, end
}

// Adjust applies delta to one bound, keeping the other bound fixed and clamping the
// moved one so the clip stays valid.
func (c Clip) Adjust(field BoundField, delta float64) Clip {
	switch field {
	case BoundStart:
		start := c.StartSec + delta
		if maxStart := c.EndSec - MinClipDuration; start > maxStart {
			start = maxStart
		}
		c.StartSec = math.Max(0, start)
		if c.EndSec-c.StartSec < MinClipDuration {
			c.EndSec = c.StartSec + MinClipDuration
		}
	case BoundEnd:
		end := c.EndSec + delta
		if minEnd := c.StartSec + MinClipDuration; end < minEnd {
			end = minEnd
		}
		c.EndSec = end
	}
	return c
}
