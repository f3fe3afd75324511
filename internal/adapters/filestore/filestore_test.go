package filestore

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songvault/internal/domain"
)

func newStore(t *testing.T) domain.FileStore {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStage(t *testing.T) {
	t.Run("copies under the base name", func(t *testing.T) {
		s := newStore(t)
		src := writeFile(t, t.TempDir(), "song.mp3", "bytes")

		name, err := s.Stage(src)
		require.NoError(t, err)
		assert.Equal(t, "song.mp3", name)
		assert.True(t, s.Exists("song.mp3"))

		rc, err := s.Open("song.mp3")
		require.NoError(t, err)
		defer rc.Close()
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "bytes", string(got))
	})

	t.Run("name collision", func(t *testing.T) {
		s := newStore(t)
		src := writeFile(t, t.TempDir(), "song.mp3", "bytes")
		_, err := s.Stage(src)
		require.NoError(t, err)

		other := writeFile(t, t.TempDir(), "song.mp3", "other bytes")
		_, err = s.Stage(other)
		require.ErrorIs(t, err, domain.ErrSongExists)

		// Original content is untouched.
		rc, err := s.Open("song.mp3")
		require.NoError(t, err)
		defer rc.Close()
		got, _ := io.ReadAll(rc)
		assert.Equal(t, "bytes", string(got))
	})

	t.Run("missing source", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Stage(filepath.Join(t.TempDir(), "ghost.mp3"))
		require.Error(t, err)
		assert.False(t, s.Exists("ghost.mp3"))
	})
}

func TestRemove(t *testing.T) {
	s := newStore(t)
	src := writeFile(t, t.TempDir(), "song.mp3", "bytes")
	_, err := s.Stage(src)
	require.NoError(t, err)

	require.NoError(t, s.Remove("song.mp3"))
	assert.False(t, s.Exists("song.mp3"))

	err = s.Remove("song.mp3")
	require.ErrorIs(t, err, domain.ErrSongFileMissing)
}

func TestOpenMissing(t *testing.T) {
	s := newStore(t)
	_, err := s.Open("ghost.mp3")
	require.ErrorIs(t, err, domain.ErrSongFileMissing)
}

func TestPathStripsDirectories(t *testing.T) {
	s := newStore(t)
	assert.Equal(t, s.Path("song.mp3"), s.Path("../../song.mp3"))
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "storage")
	_, err := New(dir)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
