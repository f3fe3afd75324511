package services

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"songvault/internal/domain"
)

type catalogService struct {
	songRepo       domain.SongRepository
	files          domain.FileStore
	playback       *PlaybackController
	store          io.Closer
	allowedFormats map[string]struct{}
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewCatalogService wires the metadata store, the file store and the
// playback controller into the catalog manager. store is the long-lived
// metadata store handle released by Close; it may be nil in tests.
func NewCatalogService(songRepo domain.SongRepository,
	files domain.FileStore,
	player domain.Player,
	store io.Closer,
	allowedFormats []string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	allowed := make(map[string]struct{}, len(allowedFormats))
	for _, f := range allowedFormats {
		allowed[strings.ToLower(strings.TrimPrefix(f, "."))] = struct{}{}
	}
	return &catalogService{
		songRepo:       songRepo,
		files:          files,
		playback:       NewPlaybackController(player),
		store:          store,
		allowedFormats: allowed,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// AddSong materializes a new catalog entry: the file is staged into the
// file store first, then the metadata row is inserted. If the insert
// fails the staged file is removed again, so a failed add leaves no
// partial state behind.
func (s *catalogService) AddSong(ctx context.Context, sourcePath string, meta domain.SongMetadata) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if meta.Artist == "" || meta.SongName == "" {
		return 0, fmt.Errorf("%w: artist and song name are required", domain.ErrInvalidInput)
	}
	fileName := filepath.Base(sourcePath)
	if err := s.checkFormat(fileName); err != nil {
		return 0, err
	}
	if s.files.Exists(fileName) {
		return 0, fmt.Errorf("%w: %s", domain.ErrSongExists, fileName)
	}
	dup, err := s.songRepo.HasDuplicate(ctx, meta)
	if err != nil {
		return 0, fmt.Errorf("check for duplicate: %w", err)
	}
	if dup {
		return 0, fmt.Errorf("%w: %s - %s", domain.ErrDuplicateSong, meta.Artist, meta.SongName)
	}

	if _, err := s.files.Stage(sourcePath); err != nil {
		return 0, err
	}
	song := domain.NewSong(fileName, meta.Artist, meta.SongName, meta.ReleaseDate, meta.Tags)
	if err := s.songRepo.Create(ctx, song); err != nil {
		if rmErr := s.files.Remove(fileName); rmErr != nil {
			s.logger.Error("rollback of staged file failed", "file", fileName, "error", rmErr)
		}
		return 0, fmt.Errorf("insert song metadata: %w", err)
	}
	s.logger.Info("song added", "id", song.ID, "file", fileName)
	return song.ID, nil
}

// DeleteSong removes the backing file before the metadata row: if the
// file cannot be removed the row stays, so the catalog never points at
// nothing. A row-delete failure after the file is gone is logged and
// reported as the residual desync it is.
func (s *catalogService) DeleteSong(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	song, err := s.songRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSongNotFound) {
			return fmt.Errorf("%w: id %d", domain.ErrSongNotFound, id)
		}
		return fmt.Errorf("load song %d: %w", id, err)
	}
	if !s.files.Exists(song.FileName) {
		return fmt.Errorf("%w: %s (id %d)", domain.ErrSongFileMissing, song.FileName, id)
	}
	if err := s.files.Remove(song.FileName); err != nil {
		return fmt.Errorf("remove stored file %s: %w", song.FileName, err)
	}
	if err := s.songRepo.Delete(ctx, id); err != nil {
		s.logger.Error("file removed but metadata row remains", "id", id, "file", song.FileName, "error", err)
		return fmt.Errorf("delete song row %d: %w", id, err)
	}
	s.logger.Info("song deleted", "id", id, "file", song.FileName)
	return nil
}

func (s *catalogService) ModifySong(ctx context.Context, id int64, upd domain.SongUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.Empty() {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}
	if err := s.songRepo.Update(ctx, id, upd); err != nil {
		if errors.Is(err, domain.ErrSongNotFound) {
			return fmt.Errorf("%w: id %d", domain.ErrSongNotFound, id)
		}
		return fmt.Errorf("update song %d: %w", id, err)
	}
	return nil
}

func (s *catalogService) Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Song, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	songs, err := s.songRepo.Search(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("search songs: %w", err)
	}
	return songs, nil
}

func (s *catalogService) GetAllSongs(ctx context.Context) ([]*domain.Song, error) {
	return s.Search(ctx, domain.SearchCriteria{})
}

// CreateSaveList archives the files of every song matching the criteria
// into a ZIP at archivePath and returns the file names actually added.
// A song whose file has gone missing is skipped, not fatal; the archive
// then holds a subset of the matches.
func (s *catalogService) CreateSaveList(ctx context.Context, archivePath string, criteria domain.SearchCriteria) ([]string, error) {
	songs, err := s.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, domain.ErrNoMatch
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return nil, fmt.Errorf("create archive %s: %w", archivePath, err)
	}
	defer out.Close()
	zw := zip.NewWriter(out)

	var added []string
	for _, song := range songs {
		src, err := s.files.Open(song.FileName)
		if err != nil {
			if errors.Is(err, domain.ErrSongFileMissing) {
				s.logger.Warn("skipping song with missing file", "id", song.ID, "file", song.FileName)
				continue
			}
			zw.Close()
			return nil, fmt.Errorf("open %s for archiving: %w", song.FileName, err)
		}
		entry, err := zw.Create(song.FileName)
		if err == nil {
			_, err = io.Copy(entry, src)
		}
		src.Close()
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("archive %s: %w", song.FileName, err)
		}
		added = append(added, song.FileName)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive %s: %w", archivePath, err)
	}
	s.logger.Info("save list created", "archive", archivePath, "files", len(added))
	return added, nil
}

// Playback passthrough. The catalog keeps no state of its own here; the
// controller owns the single playback session.

func (s *catalogService) Play(path string) error { return s.playback.Play(path) }
func (s *catalogService) Pause() error           { return s.playback.Pause() }
func (s *catalogService) Resume() error          { return s.playback.Resume() }
func (s *catalogService) Stop() error            { return s.playback.Stop() }

// Close stops any active playback and releases the metadata store
// handle.
func (s *catalogService) Close() error {
	if err := s.playback.Stop(); err != nil {
		s.logger.Warn("stop playback on close", "error", err)
	}
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func (s *catalogService) checkFormat(fileName string) error {
	if len(s.allowedFormats) == 0 {
		return nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if _, ok := s.allowedFormats[ext]; !ok {
		return fmt.Errorf("%w: unsupported audio format %q", domain.ErrInvalidInput, ext)
	}
	return nil
}
