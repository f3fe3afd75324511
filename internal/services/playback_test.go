package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songvault/internal/domain"
)

func TestPlaybackController_Transitions(t *testing.T) {
	t.Run("play pause resume stop", func(t *testing.T) {
		p := &fakePlayer{}
		c := NewPlaybackController(p)

		require.NoError(t, c.Play("a.mp3"))
		state, current := c.State()
		assert.Equal(t, domain.PlaybackPlaying, state)
		assert.Equal(t, "a.mp3", current)

		require.NoError(t, c.Pause())
		state, _ = c.State()
		assert.Equal(t, domain.PlaybackPaused, state)

		require.NoError(t, c.Resume())
		state, _ = c.State()
		assert.Equal(t, domain.PlaybackPlaying, state)

		require.NoError(t, c.Stop())
		state, current = c.State()
		assert.Equal(t, domain.PlaybackStopped, state)
		assert.Empty(t, current)

		assert.Equal(t, []string{"start a.mp3", "pause", "resume", "stop"}, p.calls)
	})

	t.Run("play preempts the active session", func(t *testing.T) {
		p := &fakePlayer{}
		c := NewPlaybackController(p)

		require.NoError(t, c.Play("a.mp3"))
		require.NoError(t, c.Play("b.mp3"))
		_, current := c.State()
		assert.Equal(t, "b.mp3", current)
		assert.Equal(t, []string{"start a.mp3", "stop", "start b.mp3"}, p.calls)
	})

	t.Run("pause while stopped", func(t *testing.T) {
		c := NewPlaybackController(&fakePlayer{})
		require.ErrorIs(t, c.Pause(), domain.ErrNoPlayback)
	})

	t.Run("pause while paused", func(t *testing.T) {
		c := NewPlaybackController(&fakePlayer{})
		require.NoError(t, c.Play("a.mp3"))
		require.NoError(t, c.Pause())
		require.ErrorIs(t, c.Pause(), domain.ErrNoPlayback)
	})

	t.Run("resume while playing", func(t *testing.T) {
		c := NewPlaybackController(&fakePlayer{})
		require.NoError(t, c.Play("a.mp3"))
		require.ErrorIs(t, c.Resume(), domain.ErrNoPlayback)
	})

	t.Run("stop while stopped is a no-op", func(t *testing.T) {
		p := &fakePlayer{}
		c := NewPlaybackController(p)
		require.NoError(t, c.Stop())
		assert.Empty(t, p.calls)
	})

	t.Run("stop from paused", func(t *testing.T) {
		c := NewPlaybackController(&fakePlayer{})
		require.NoError(t, c.Play("a.mp3"))
		require.NoError(t, c.Pause())
		require.NoError(t, c.Stop())
		state, _ := c.State()
		assert.Equal(t, domain.PlaybackStopped, state)
	})

	t.Run("failed start leaves the controller stopped", func(t *testing.T) {
		p := &fakePlayer{startErr: assert.AnError}
		c := NewPlaybackController(p)
		require.Error(t, c.Play("a.mp3"))
		state, _ := c.State()
		assert.Equal(t, domain.PlaybackStopped, state)
	})
}
