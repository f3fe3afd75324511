package services

import (
	"fmt"
	"sync"

	"songvault/internal/domain"
)

// PlaybackController owns the single playback session and its state
// machine: Stopped -> Playing (Play), Playing -> Paused (Pause),
// Paused -> Playing (Resume), Playing/Paused -> Stopped (Stop).
type PlaybackController struct {
	mu      sync.Mutex
	player  domain.Player
	state   domain.PlaybackState
	current string
}

// NewPlaybackController returns a controller in the Stopped state.
func NewPlaybackController(player domain.Player) *PlaybackController {
	return &PlaybackController{player: player}
}

// Play starts playback of the given path. An already active session,
// playing or paused, is stopped first.
func (c *PlaybackController) Play(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.PlaybackStopped {
		if err := c.player.Stop(); err != nil {
			return fmt.Errorf("stop current session: %w", err)
		}
		c.state = domain.PlaybackStopped
		c.current = ""
	}
	if err := c.player.Start(path); err != nil {
		return fmt.Errorf("start playback of %s: %w", path, err)
	}
	c.state = domain.PlaybackPlaying
	c.current = path
	return nil
}

// Pause pauses the playing session.
func (c *PlaybackController) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.PlaybackPlaying {
		return fmt.Errorf("%w: cannot pause while %s", domain.ErrNoPlayback, c.state)
	}
	if err := c.player.Pause(); err != nil {
		return err
	}
	c.state = domain.PlaybackPaused
	return nil
}

// Resume resumes the paused session.
func (c *PlaybackController) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.PlaybackPaused {
		return fmt.Errorf("%w: cannot resume while %s", domain.ErrNoPlayback, c.state)
	}
	if err := c.player.Resume(); err != nil {
		return err
	}
	c.state = domain.PlaybackPlaying
	return nil
}

// Stop ends the active session. Stopping an already stopped controller
// is a no-op.
func (c *PlaybackController) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == domain.PlaybackStopped {
		return nil
	}
	if err := c.player.Stop(); err != nil {
		return err
	}
	c.state = domain.PlaybackStopped
	c.current = ""
	return nil
}

// State returns the current playback state and the path of the active
// session, empty when stopped.
func (c *PlaybackController) State() (domain.PlaybackState, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.current
}
