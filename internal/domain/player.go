package domain

import "errors"

// ErrNoPlayback is returned by pause/resume when there is no playback
// session in the state they act on.
var ErrNoPlayback = errors.New("no active playback session")

// PlaybackState is the state of the single playback session.
type PlaybackState int

const (
	PlaybackStopped PlaybackState = iota
	PlaybackPlaying
	PlaybackPaused
)

func (s PlaybackState) String() string {
	switch s {
	case PlaybackPlaying:
		return "playing"
	case PlaybackPaused:
		return "paused"
	default:
		return "stopped"
	}
}

// Player defines the contract for the audio output device
// (infrastructure port). Implementations hold at most one session.
type Player interface {
	Start(path string) error
	Pause() error
	Resume() error
	Stop() error
}
