package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	_ "github.com/lib/pq"

	"songvault/config"
	"songvault/internal/adapters/filestore"
	"songvault/internal/adapters/player"
	"songvault/internal/adapters/tagreader"
	"songvault/internal/domain"
	"songvault/internal/repository/postgres"
	"songvault/internal/services"
)

const usage = `usage: songvault <command> [flags]

commands:
  add     -file <path> [-artist A] [-song S] [-date YYYY-MM-DD] [-tags a,b]
  delete  -id <id>
  modify  -id <id> [-artist A] [-song S] [-date YYYY-MM-DD] [-tags a,b]
  search  [-file-name N] [-artist A] [-song S] [-date YYYY-MM-DD] [-tags a,b] [-format mp3]
  list
  export  -archive <path.zip> [search flags]
  play    -id <id>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	ctx := context.Background()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Error("bootstrap schema", "error", err)
		os.Exit(1)
	}

	files, err := filestore.New(cfg.StoragePath)
	if err != nil {
		logger.Error("open file store", "path", cfg.StoragePath, "error", err)
		os.Exit(1)
	}

	var playerArgs []string
	if cfg.PlayerCommand == "ffplay" {
		playerArgs = []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}
	}
	dev := player.New(cfg.PlayerCommand, playerArgs, logger)
	catalog := services.NewCatalogService(postgres.NewSongRepository(db), files, dev, db,
		cfg.AllowedFormats, logger, 30*time.Second)
	defer catalog.Close()

	if err := run(ctx, catalog, files, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "songvault %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func run(ctx context.Context, catalog domain.CatalogService, files domain.FileStore, command string, args []string) error {
	switch command {
	case "add":
		return runAdd(ctx, catalog, args)
	case "delete":
		return runDelete(ctx, catalog, args)
	case "modify":
		return runModify(ctx, catalog, args)
	case "search":
		return runSearch(ctx, catalog, args)
	case "list":
		return printSongs(catalog.GetAllSongs(ctx))
	case "export":
		return runExport(ctx, catalog, args)
	case "play":
		return runPlay(ctx, catalog, files, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printSongs(songs []*domain.Song, err error) error {
	if err != nil {
		return err
	}
	if len(songs) == 0 {
		fmt.Println("no songs found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILE\tARTIST\tSONG\tRELEASED\tTAGS")
	for _, s := range songs {
		released := ""
		if s.ReleaseDate != nil {
			released = s.ReleaseDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.FileName, s.Artist, s.SongName, released, strings.Join(s.Tags, ","))
	}
	return w.Flush()
}

func runAdd(ctx context.Context, catalog domain.CatalogService, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	file := fs.String("file", "", "path of the audio file to add")
	artist := fs.String("artist", "", "artist name")
	song := fs.String("song", "", "song name")
	date := fs.String("date", "", "release date (YYYY-MM-DD)")
	tags := fs.String("tags", "", "comma separated tags")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	meta := domain.SongMetadata{Artist: *artist, SongName: *song, Tags: splitTags(*tags)}

	// Fill fields the caller left out from the file's embedded tags.
	if meta.Artist == "" || meta.SongName == "" {
		if probed, err := tagreader.New().Probe(*file); err == nil {
			if meta.Artist == "" {
				meta.Artist = probed.Artist
			}
			if meta.SongName == "" {
				meta.SongName = probed.SongName
			}
		}
	}

	if *date != "" {
		d, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return fmt.Errorf("invalid -date: %w", err)
		}
		meta.ReleaseDate = &d
	}

	id, err := catalog.AddSong(ctx, *file, meta)
	if err != nil {
		return err
	}
	fmt.Printf("added song %d\n", id)
	return nil
}

func runDelete(ctx context.Context, catalog domain.CatalogService, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "song id")
	fs.Parse(args)
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}
	if err := catalog.DeleteSong(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("deleted song %d\n", *id)
	return nil
}

func runModify(ctx context.Context, catalog domain.CatalogService, args []string) error {
	fs := flag.NewFlagSet("modify", flag.ExitOnError)
	id := fs.Int64("id", 0, "song id")
	artist := fs.String("artist", "", "new artist name")
	song := fs.String("song", "", "new song name")
	date := fs.String("date", "", "new release date (YYYY-MM-DD)")
	tags := fs.String("tags", "", "new comma separated tags")
	fs.Parse(args)
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	var upd domain.SongUpdate
	if *artist != "" {
		upd.Artist = artist
	}
	if *song != "" {
		upd.SongName = song
	}
	if *date != "" {
		d, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return fmt.Errorf("invalid -date: %w", err)
		}
		upd.ReleaseDate = &d
	}
	if *tags != "" {
		t := splitTags(*tags)
		upd.Tags = &t
	}
	return catalog.ModifySong(ctx, *id, upd)
}

func searchFlags(fs *flag.FlagSet) func() (domain.SearchCriteria, error) {
	fileName := fs.String("file-name", "", "exact file name")
	artist := fs.String("artist", "", "exact artist")
	song := fs.String("song", "", "exact song name")
	date := fs.String("date", "", "exact release date (YYYY-MM-DD)")
	tags := fs.String("tags", "", "comma separated tags, matches on overlap")
	format := fs.String("format", "", "file extension, e.g. mp3")
	return func() (domain.SearchCriteria, error) {
		c := domain.SearchCriteria{
			FileName: *fileName,
			Artist:   *artist,
			SongName: *song,
			Tags:     splitTags(*tags),
			Format:   strings.TrimPrefix(*format, "."),
		}
		if *date != "" {
			d, err := time.Parse("2006-01-02", *date)
			if err != nil {
				return c, fmt.Errorf("invalid -date: %w", err)
			}
			c.ReleaseDate = &d
		}
		return c, nil
	}
}

func runSearch(ctx context.Context, catalog domain.CatalogService, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	criteria := searchFlags(fs)
	fs.Parse(args)
	c, err := criteria()
	if err != nil {
		return err
	}
	return printSongs(catalog.Search(ctx, c))
}

func runExport(ctx context.Context, catalog domain.CatalogService, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	archive := fs.String("archive", "", "path of the ZIP archive to create")
	criteria := searchFlags(fs)
	fs.Parse(args)
	if *archive == "" {
		return fmt.Errorf("-archive is required")
	}
	c, err := criteria()
	if err != nil {
		return err
	}
	added, err := catalog.CreateSaveList(ctx, *archive, c)
	if err != nil {
		return err
	}
	fmt.Printf("archived %d file(s) into %s\n", len(added), *archive)
	for _, name := range added {
		fmt.Println("  " + name)
	}
	return nil
}

// runPlay plays a cataloged song to completion, driving the playback
// state machine from simple stdin commands.
func runPlay(ctx context.Context, catalog domain.CatalogService, files domain.FileStore, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	id := fs.Int64("id", 0, "song id")
	fs.Parse(args)
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	songs, err := catalog.Search(ctx, domain.SearchCriteria{})
	if err != nil {
		return err
	}
	var target *domain.Song
	for _, s := range songs {
		if s.ID == *id {
			target = s
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: id %d", domain.ErrSongNotFound, *id)
	}

	if err := catalog.Play(files.Path(target.FileName)); err != nil {
		return err
	}
	fmt.Printf("playing %s (p = pause, r = resume, s = stop)\n", target.FileName)
	for {
		var input string
		if _, err := fmt.Scanln(&input); err != nil {
			return catalog.Stop()
		}
		switch input {
		case "p":
			err = catalog.Pause()
		case "r":
			err = catalog.Resume()
		case "s":
			return catalog.Stop()
		default:
			continue
		}
		if err != nil {
			fmt.Println(err)
		}
	}
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
