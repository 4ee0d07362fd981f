// Package videoref normalizes user input into the opaque video reference stored on a Game.
package videoref

import (
	"regexp"
	"strings"
)

var (
	urlPatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	}
	rawID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// Extract returns the video id embedded in a YouTube URL, or the trimmed input itself
// when it is already a bare id or an unrecognized reference.
func Extract(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	for _, pattern := range urlPatterns {
		if m := pattern.FindStringSubmatch(input); m != nil {
			return m[1]
		}
	}
	return input
}

// IsVideoID reports whether ref has the shape of a bare 11 character video id
func IsVideoID(ref string) bool {
	return rawID.MatchString(ref)
}
