package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"songvault/internal/domain"

	"github.com/lib/pq"
)

type songRepository struct {
	DB *sql.DB
}

// NewSongRepository returns a domain.SongRepository implemented with Postgres.
func NewSongRepository(db *sql.DB) domain.SongRepository {
	return &songRepository{DB: db}
}

const songColumns = `id, file_name, artist, song_name, release_date, tags`

func (r *songRepository) Create(ctx context.Context, song *domain.Song) error {
	query := `
		INSERT INTO songs (file_name, artist, song_name, release_date, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		song.FileName, song.Artist, song.SongName, song.ReleaseDate, pq.Array(song.Tags)).Scan(&song.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return fmt.Errorf("%w: %s", domain.ErrSongExists, song.FileName)
		}
		return err
	}
	return nil
}

func (r *songRepository) GetByID(ctx context.Context, id int64) (*domain.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = $1`
	song, err := scanSong(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrSongNotFound
		}
		return nil, err
	}
	return song, nil
}

func (r *songRepository) Update(ctx context.Context, id int64, upd domain.SongUpdate) error {
	var set []string
	args := []any{id}
	assign := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Artist != nil {
		assign("artist", *upd.Artist)
	}
	if upd.SongName != nil {
		assign("song_name", *upd.SongName)
	}
	if upd.ReleaseDate != nil {
		assign("release_date", *upd.ReleaseDate)
	}
	if upd.Tags != nil {
		assign("tags", pq.Array(*upd.Tags))
	}
	if len(set) == 0 {
		return domain.ErrInvalidInput
	}
	query := `UPDATE songs SET ` + strings.Join(set, ", ") + ` WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

func (r *songRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

// Search builds one WHERE clause per set criterion and combines them
// with AND. Tags uses the array overlap operator, Format a suffix match
// on file_name; every other field is exact equality. No criteria means
// no WHERE clause at all.
func (r *songRepository) Search(ctx context.Context, c domain.SearchCriteria) ([]*domain.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs`
	var conds []string
	var args []any
	where := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if c.FileName != "" {
		where("file_name = $%d", c.FileName)
	}
	if c.Artist != "" {
		where("artist = $%d", c.Artist)
	}
	if c.SongName != "" {
		where("song_name = $%d", c.SongName)
	}
	if c.ReleaseDate != nil {
		where("release_date = $%d", *c.ReleaseDate)
	}
	if len(c.Tags) > 0 {
		where("tags && $%d", pq.Array(c.Tags))
	}
	if c.Format != "" {
		where("file_name LIKE $%d", "%."+c.Format)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var songs []*domain.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// HasDuplicate reports whether a row with the identical metadata tuple
// already exists. The file name is not part of the comparison: the same
// song re-added under a different name still counts as a duplicate.
func (r *songRepository) HasDuplicate(ctx context.Context, meta domain.SongMetadata) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM songs
			WHERE artist = $1 AND song_name = $2
			  AND release_date IS NOT DISTINCT FROM $3
			  AND tags IS NOT DISTINCT FROM $4
		)
	`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query,
		meta.Artist, meta.SongName, meta.ReleaseDate, pq.Array(meta.Tags)).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (*domain.Song, error) {
	song := &domain.Song{}
	var releaseDate sql.NullTime
	if err := row.Scan(&song.ID, &song.FileName, &song.Artist, &song.SongName,
		&releaseDate, pq.Array(&song.Tags)); err != nil {
		return nil, err
	}
	if releaseDate.Valid {
		t := releaseDate.Time
		song.ReleaseDate = &t
	}
	return song, nil
}
