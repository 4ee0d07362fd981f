package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simplereplay/replay/internal/models"
)

func fixture() Input {
	return Input{
		Clips: []models.Clip{
			{ID: "c1", GameID: "g1", TagTypeID: "attack", StartSec: 0, EndSec: 5},
			{ID: "c2", GameID: "g1", TagTypeID: "defense", StartSec: 10, EndSec: 15},
			{ID: "c3", GameID: "g1", TagTypeID: "attack", StartSec: 20, EndSec: 25},
			{ID: "c4", GameID: "g2", TagTypeID: "attack", StartSec: 0, EndSec: 3},
		},
		ClipFlags: map[string][]models.Flag{
			"c2": {models.FlagDoubt},
			"c3": {models.FlagGood, models.FlagImportant},
		},
		PlaylistItems: map[string][]string{
			"pl1": {"c3", "c1", "missing"},
		},
	}
}

func ids(clips []models.Clip) []string {
	out := make([]string, len(clips))
	for i, c := range clips {
		out[i] = c.ID
	}
	return out
}

func TestVisibleClips(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name: "no filters keeps insertion order",
			want: []string{"c1", "c2", "c3", "c4"},
		},
		{
			name:     "game scope",
			criteria: Criteria{GameID: "g1"},
			want:     []string{"c1", "c2", "c3"},
		},
		{
			name:     "single flag",
			criteria: Criteria{Flags: []models.Flag{models.FlagDoubt}},
			want:     []string{"c2"},
		},
		{
			name:     "flags are OR combined",
			criteria: Criteria{Flags: []models.Flag{models.FlagDoubt, models.FlagImportant}},
			want:     []string{"c2", "c3"},
		},
		{
			name:     "tags are OR combined",
			criteria: Criteria{GameID: "g1", TagIDs: []string{"attack", "defense"}},
			want:     []string{"c1", "c2", "c3"},
		},
		{
			name:     "categories are AND combined",
			criteria: Criteria{TagIDs: []string{"attack"}, Flags: []models.Flag{models.FlagGood}},
			want:     []string{"c3"},
		},
		{
			name:     "playlist order overrides insertion order",
			criteria: Criteria{PlaylistID: "pl1"},
			want:     []string{"c3", "c1"},
		},
		{
			name:     "playlist with flag filter",
			criteria: Criteria{PlaylistID: "pl1", Flags: []models.Flag{models.FlagGood}},
			want:     []string{"c3"},
		},
		{
			name:     "unknown playlist shows nothing",
			criteria: Criteria{PlaylistID: "nope"},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fixture()
			in.Criteria = tt.criteria
			assert.Equal(t, tt.want, ids(VisibleClips(in)))
		})
	}
}

func TestVisibleClips_IsPure(t *testing.T) {
	in := fixture()
	in.Criteria = Criteria{Flags: []models.Flag{models.FlagDoubt, models.FlagGood}}

	first := VisibleClips(in)
	second := VisibleClips(in)
	assert.Equal(t, first, second)
	assert.Len(t, in.Clips, 4, "input must not be modified")
}

func TestVisibleClips_ClearingRestoresAll(t *testing.T) {
	in := fixture()
	all := VisibleClips(in)

	in.Criteria = Criteria{TagIDs: []string{"defense"}, PlaylistID: "pl1"}
	assert.Empty(t, VisibleClips(in))

	in.Criteria = Criteria{}
	assert.Equal(t, all, VisibleClips(in))
}

func TestStep(t *testing.T) {
	list := fixture().Clips[:3]

	tests := []struct {
		name    string
		list    []models.Clip
		current string
		dir     Direction
		want    string
		wantOK  bool
	}{
		{"next", list, "c1", Next, "c2", true},
		{"prev", list, "c3", Prev, "c2", true},
		{"no wrap at end", list, "c3", Next, "", false},
		{"no wrap at start", list, "c1", Prev, "", false},
		{"current not in list", list, "c4", Next, "", false},
		{"empty list", nil, "c1", Next, "", false},
		{"bad direction", list, "c1", Direction("up"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Step(tt.list, tt.current, tt.dir)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
