// Package filter computes the ordered list of clips visible under the current
// view filters and steps through it. Everything here is pure: the same Input
// always yields the same output and nothing is cached between calls.
package filter

import "github.com/simplereplay/replay/internal/models"

// Direction selects the neighbour returned by Step
type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// Valid reports whether d is prev or next
func (d Direction) Valid() bool {
	return d == Prev || d == Next
}

// Criteria holds the active view filters. Zero value means "show everything".
//
// Categories combine by AND, values inside one category by OR.
type Criteria struct {
	GameID     string
	TagIDs     []string
	Flags      []models.Flag
	PlaylistID string
}

// Empty reports whether no tag, flag or playlist filter is active
func (c Criteria) Empty() bool {
	return len(c.TagIDs) == 0 && len(c.Flags) == 0 && c.PlaylistID == ""
}

// Input is the slice of store state the filter reads
type Input struct {
	Clips         []models.Clip
	ClipFlags     map[string][]models.Flag
	PlaylistItems map[string][]string
	Criteria      Criteria
}

// VisibleClips returns the clips passing every active filter. Without a
// playlist filter the clips keep insertion order; with one they follow the
// playlist order and clips missing from the project are skipped.
func VisibleClips(in Input) []models.Clip {
	c := in.Criteria

	tags := toSet(c.TagIDs)
	flags := make(map[models.Flag]struct{}, len(c.Flags))
	for _, f := range c.Flags {
		flags[f] = struct{}{}
	}

	match := func(clip models.Clip) bool {
		if c.GameID != "" && clip.GameID != c.GameID {
			return false
		}
		if len(tags) > 0 {
			if _, ok := tags[clip.TagTypeID]; !ok {
				return false
			}
		}
		if len(flags) > 0 && !hasAnyFlag(in.ClipFlags[clip.ID], flags) {
			return false
		}
		return true
	}

	out := make([]models.Clip, 0, len(in.Clips))

	if c.PlaylistID != "" {
		byID := make(map[string]models.Clip, len(in.Clips))
		for _, clip := range in.Clips {
			byID[clip.ID] = clip
		}
		seen := make(map[string]struct{})
		for _, id := range in.PlaylistItems[c.PlaylistID] {
			clip, ok := byID[id]
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if match(clip) {
				out = append(out, clip)
			}
		}
		return out
	}

	for _, clip := range in.Clips {
		if match(clip) {
			out = append(out, clip)
		}
	}
	return out
}

// Step returns the id next to currentID in list. It reports false at either
// boundary, for an empty list, or when currentID is not in the list.
func Step(list []models.Clip, currentID string, dir Direction) (string, bool) {
	idx := -1
	for i, clip := range list {
		if clip.ID == currentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}

	switch dir {
	case Next:
		idx++
	case Prev:
		idx--
	default:
		return "", false
	}

	if idx < 0 || idx >= len(list) {
		return "", false
	}
	return list[idx].ID, true
}

func hasAnyFlag(have []models.Flag, want map[models.Flag]struct{}) bool {
	for _, f := range have {
		if _, ok := want[f]; ok {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
