// Package player connects the store to a video player.
package player

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/simplereplay/replay/pkg/logging"
	"github.com/simplereplay/replay/pkg/videoref"

	"github.com/simplereplay/replay/internal/store"
)

// Player is the capability set the session needs from a video player
type Player interface {
	LoadVideo(videoRef string) error
	SeekTo(seconds float64)
	CurrentTime() float64
	PlayClip(startSec, endSec float64)
}

// Bind keeps p in step with st: the current game's video is loaded when the
// game changes or a project is loaded, and a selected clip is played. The
// returned function detaches p.
func Bind(st *store.Store, p Player, logger *logrus.Logger) func() {
	log := logging.WithComponent(logger, "player")

	loadCurrent := func(store.Event) {
		game, ok := st.CurrentGame()
		if !ok || game.VideoRef == "" {
			return
		}
		if err := p.LoadVideo(game.VideoRef); err != nil {
			log.WithError(err).WithField("game_id", game.ID).Warn("Could not load video")
		}
	}

	unsubGame := st.OnEach([]store.EventKind{store.GameChanged, store.ProjectLoaded}, loadCurrent)
	unsubClip := st.On(store.ClipChanged, func(ev store.Event) {
		if ev.(store.ClipChangedEvent).ClipID == "" {
			return
		}
		if clip, ok := st.CurrentClip(); ok {
			p.PlayClip(clip.StartSec, clip.EndSec)
		}
	})

	return func() {
		unsubGame()
		unsubClip()
	}
}

// LogPlayer is a headless Player that records and logs what it was asked to do
type LogPlayer struct {
	mu       sync.Mutex
	videoID  string
	position float64
	loads    int
	log      *logrus.Entry
}

// NewLogPlayer creates a headless player
func NewLogPlayer(logger *logrus.Logger) *LogPlayer {
	return &LogPlayer{log: logging.WithComponent(logger, "player")}
}

// LoadVideo accepts a video id or URL and rewinds to the start
func (p *LogPlayer) LoadVideo(ref string) error {
	id := videoref.Extract(ref)
	if !videoref.IsVideoID(id) {
		return fmt.Errorf("unsupported video reference %q", ref)
	}

	p.mu.Lock()
	p.videoID = id
	p.position = 0
	p.loads++
	p.mu.Unlock()

	p.log.WithField("video_id", id).Info("Loaded video")
	return nil
}

func (p *LogPlayer) SeekTo(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	p.mu.Lock()
	p.position = seconds
	p.mu.Unlock()
	p.log.WithField("seconds", seconds).Debug("Seek")
}

func (p *LogPlayer) CurrentTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// PlayClip seeks to the clip start; there is no playback to stop at the end
func (p *LogPlayer) PlayClip(startSec, endSec float64) {
	p.SeekTo(startSec)
	p.log.WithFields(logrus.Fields{
		"start_sec": startSec,
		"end_sec":   endSec,
	}).Info("Playing clip")
}

// VideoID returns the loaded video id, or "" before the first load
func (p *LogPlayer) VideoID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.videoID
}

// Loads counts successful LoadVideo calls
func (p *LogPlayer) Loads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loads
}
