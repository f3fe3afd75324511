package domain

import "io"

// FileStore defines the contract for the flat directory holding the
// actual audio files, keyed by base name.
type FileStore interface {
	// Exists reports whether a file with the given base name is stored.
	Exists(name string) bool
	// Stage copies the file at sourcePath into the store under its base
	// name and returns that name. It fails with ErrSongExists if the
	// name is already taken.
	Stage(sourcePath string) (string, error)
	// Remove deletes the named file from the store.
	Remove(name string) error
	// Open opens the named file for reading.
	Open(name string) (io.ReadCloser, error)
	// Path returns the absolute path of the named file inside the store.
	Path(name string) string
}

// MetadataProbe reads metadata embedded in an audio file, used to
// prefill catalog fields the user did not supply.
type MetadataProbe interface {
	Probe(path string) (*ProbedMetadata, error)
}

// ProbedMetadata is what a MetadataProbe could recover from the file.
// Fields the container did not carry are empty.
type ProbedMetadata struct {
	Artist   string
	SongName string
	Year     int
}
