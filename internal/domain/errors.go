package domain

import "errors"

var (
	// ErrSongNotFound is returned when the referenced id has no row.
	ErrSongNotFound = errors.New("song not found")
	// ErrSongExists is returned when the derived file name is already
	// taken, in the file store or the metadata store.
	ErrSongExists = errors.New("song file name already exists")
	// ErrDuplicateSong is returned when an identical metadata tuple is
	// already cataloged, regardless of file name.
	ErrDuplicateSong = errors.New("identical song already cataloged")
	// ErrSongFileMissing signals a desync: the metadata row exists but
	// the backing file is gone.
	ErrSongFileMissing = errors.New("song file missing from storage")
	// ErrNoMatch is returned when an operation requires at least one
	// search result and got none.
	ErrNoMatch = errors.New("no songs match the given criteria")
	// ErrInvalidInput covers malformed or incomplete caller input.
	ErrInvalidInput = errors.New("invalid input")
)
