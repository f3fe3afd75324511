package domain

import (
	"context"
	"time"
)

// Song represents one catalog entry: a metadata row joined to a stored
// audio file by FileName.
type Song struct {
	ID          int64      `json:"id"`
	FileName    string     `json:"file_name"`
	Artist      string     `json:"artist"`
	SongName    string     `json:"song_name"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// NewSong returns a new Song with the given fields. ID is set by the
// repository on create.
func NewSong(fileName, artist, songName string, releaseDate *time.Time, tags []string) *Song {
	return &Song{
		FileName:    fileName,
		Artist:      artist,
		SongName:    songName,
		ReleaseDate: releaseDate,
		Tags:        tags,
	}
}

// SongMetadata carries the caller-supplied fields for an add operation.
// The file name is derived from the source path, never supplied directly.
type SongMetadata struct {
	Artist      string
	SongName    string
	ReleaseDate *time.Time
	Tags        []string
}

// SongUpdate is a partial update for modify. Nil fields are left
// untouched. FileName is deliberately absent: it is tied to the stored
// file and cannot change after creation.
type SongUpdate struct {
	Artist      *string
	SongName    *string
	ReleaseDate *time.Time
	Tags        *[]string
}

// Empty reports whether the update carries no fields.
func (u SongUpdate) Empty() bool {
	return u.Artist == nil && u.SongName == nil && u.ReleaseDate == nil && u.Tags == nil
}

// SearchCriteria is the closed set of recognized search fields, combined
// with AND. Zero-valued fields are ignored. Tags matches on overlap (at
// least one tag in common). Format is synthetic: it matches songs whose
// file name ends in "." + Format.
type SearchCriteria struct {
	FileName    string
	Artist      string
	SongName    string
	ReleaseDate *time.Time
	Tags        []string
	Format      string
}

// SongRepository defines the interface for song metadata storage
type SongRepository interface {
	Create(ctx context.Context, song *Song) error
	GetByID(ctx context.Context, id int64) (*Song, error)
	Update(ctx context.Context, id int64, upd SongUpdate) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, criteria SearchCriteria) ([]*Song, error)
	HasDuplicate(ctx context.Context, meta SongMetadata) (bool, error)
}

// CatalogService defines the business logic for the song catalog. It is
// the single point of contact for the presentation layer.
type CatalogService interface {
	AddSong(ctx context.Context, sourcePath string, meta SongMetadata) (int64, error)
	DeleteSong(ctx context.Context, id int64) error
	ModifySong(ctx context.Context, id int64, upd SongUpdate) error
	Search(ctx context.Context, criteria SearchCriteria) ([]*Song, error)
	GetAllSongs(ctx context.Context) ([]*Song, error)
	CreateSaveList(ctx context.Context, archivePath string, criteria SearchCriteria) ([]string, error)

	Play(path string) error
	Pause() error
	Resume() error
	Stop() error

	Close() error
}
