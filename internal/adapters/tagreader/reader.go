// Package tagreader probes metadata embedded in audio files (ID3v2,
// MP4 atoms, Vorbis comments) so the presentation layer can prefill
// catalog fields from the file itself.
package tagreader

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"

	"songvault/internal/domain"
)

type reader struct{}

// New returns a domain.MetadataProbe backed by the embedded tags of the
// file.
func New() domain.MetadataProbe {
	return reader{}
}

func (reader) Probe(path string) (*domain.ProbedMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// Files without any tag block are still valid catalog input.
		if err == tag.ErrNoTagsFound {
			return &domain.ProbedMetadata{}, nil
		}
		return nil, fmt.Errorf("read tags from %s: %w", path, err)
	}
	return &domain.ProbedMetadata{
		Artist:   m.Artist(),
		SongName: m.Title(),
		Year:     m.Year(),
	}, nil
}
