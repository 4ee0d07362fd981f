package models

import "fmt"

// Flag is a user-assigned status marker on a clip. The set is closed.
type Flag string

const (
	FlagGood      Flag = "bueno"
	FlagToFix     Flag = "acorregir"
	FlagDoubt     Flag = "duda"
	FlagImportant Flag = "importante"
)

// AllFlags lists every valid flag in display order
var AllFlags = []Flag{FlagGood, FlagToFix, FlagDoubt, FlagImportant}

// Valid reports whether f belongs to the closed flag set
func (f Flag) Valid() bool {
	switch f {
	case FlagGood, FlagToFix, FlagDoubt, FlagImportant:
		return true
	}
	return false
}

// ParseFlag converts a flag name, rejecting anything outside the closed set
func ParseFlag(name string) (Flag, error) {
	f := Flag(name)
	if !f.Valid() {
		return "", fmt.Errorf("unknown flag %q", name)
	}
	return f, nil
}

// SortFlags returns the flags in AllFlags order with duplicates and invalid names removed
func SortFlags(flags []Flag) []Flag {
	seen := make(map[Flag]bool, len(flags))
	for _, f := range flags {
		seen[f] = true
	}
	out := make([]Flag, 0, len(flags))
	for _, f := range AllFlags {
		if seen[f] {
			out = append(out, f)
		}
	}
	return out
}
