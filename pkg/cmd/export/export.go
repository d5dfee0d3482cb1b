package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/igolaizola/musicstore/pkg/catalog"
	"github.com/igolaizola/musicstore/pkg/filestore"
	"github.com/igolaizola/musicstore/pkg/image"
	"github.com/igolaizola/musicstore/pkg/seed"
	"github.com/igolaizola/musicstore/pkg/sound"
	"github.com/igolaizola/musicstore/pkg/storage"
	"github.com/oklog/ulid/v2"
)

type Config struct {
	Debug       bool
	DBType      string
	DBConn      string
	FSType      string
	FSConn      string
	Timeout     time.Duration
	Concurrency int

	ID           string
	Seed         int64
	Language     string
	AverageLikes float64
	FromPage     int
	ToPage       int
	PageSize     int
	Duration     int
	Channels     int
	SkipAudio    bool
}

// Row is a line of the export manifest.
type Row struct {
	Index  int    `csv:"index"`
	Title  string `csv:"title"`
	Artist string `csv:"artist"`
	Album  string `csv:"album"`
	Genre  string `csv:"genre"`
	Likes  int    `csv:"likes"`
	Review string `csv:"review"`
	Cover  string `csv:"cover"`
	Audio  string `csv:"audio"`
}

// Run generates every song of a page range with its cover and audio, uploads
// the media and a csv manifest to the file store and optionally records the
// songs in the database.
func Run(ctx context.Context, cfg *Config) error {
	var iteration int
	log.Println("export: process started")
	defer func() {
		log.Printf("export: process ended (%d)\n", iteration)
	}()

	debug := func(format string, args ...interface{}) {
		if !cfg.Debug {
			return
		}
		format += "\n"
		log.Printf(format, args...)
	}

	if cfg.FromPage < 1 {
		return errors.New("export: from page must be positive")
	}
	toPage := cfg.ToPage
	if toPage == 0 {
		toPage = cfg.FromPage
	}
	if toPage < cfg.FromPage {
		return fmt.Errorf("export: to page %d is before from page %d", toPage, cfg.FromPage)
	}
	if cfg.PageSize < 1 {
		return errors.New("export: page size must be positive")
	}
	duration := cfg.Duration
	if duration == 0 {
		duration = sound.DefaultDuration
	}
	channels := cfg.Channels
	if channels == 0 {
		channels = 1
	}
	id := cfg.ID
	if id == "" {
		id = ulid.Make().String()
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	fs, err := filestore.New(cfg.FSType, cfg.FSConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("export: couldn't create file storage: %w", err)
	}

	// The database is optional
	var store *storage.Store
	var snapshot *storage.Export
	if cfg.DBType != "" {
		store, err = storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
		if err != nil {
			return fmt.Errorf("export: couldn't create orm store: %w", err)
		}
		if err := store.Start(ctx); err != nil {
			return fmt.Errorf("export: couldn't start orm store: %w", err)
		}
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("export: couldn't migrate orm store: %w", err)
		}
		snapshot = &storage.Export{
			ID:           id,
			Seed:         cfg.Seed,
			Language:     cfg.Language,
			AverageLikes: cfg.AverageLikes,
			FromPage:     cfg.FromPage,
			ToPage:       toPage,
			PageSize:     cfg.PageSize,
			State:        storage.Pending,
		}
		if err := store.SetExport(ctx, snapshot); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	renderer, err := image.DefaultRenderer()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	e := &exporter{
		id:        id,
		cfg:       cfg,
		duration:  duration,
		channels:  channels,
		generator: catalog.Default(),
		coverer:   image.NewCoverer(renderer),
		fs:        fs,
		store:     store,
	}

	rows, err := e.songs(ctx, toPage, &iteration, debug)
	if err == nil {
		err = e.manifest(ctx, rows)
	}

	if snapshot != nil {
		snapshot.Songs = len(rows)
		snapshot.State = storage.Completed
		if err != nil {
			snapshot.State = storage.Failed
		}
		// Record the final state even if the context was canceled
		if setErr := store.SetExport(context.Background(), snapshot); setErr != nil {
			log.Printf("export: couldn't update export %s: %v\n", id, setErr)
		}
	}
	if err != nil {
		return err
	}
	log.Printf("export: %s exported %d songs\n", id, len(rows))
	return nil
}

type exporter struct {
	id        string
	cfg       *Config
	duration  int
	channels  int
	generator *catalog.Generator
	coverer   *image.Coverer
	fs        *filestore.Store
	store     *storage.Store
}

// songs exports every song concurrently and returns the rows sorted by index.
func (e *exporter) songs(ctx context.Context, toPage int, iteration *int, debug func(string, ...interface{})) ([]*Row, error) {
	first := (e.cfg.FromPage-1)*e.cfg.PageSize + 1
	last := toPage * e.cfg.PageSize

	// Concurrency settings
	concurrency := e.cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	errC := make(chan error, concurrency)
	defer close(errC)
	for i := 0; i < concurrency; i++ {
		errC <- nil
	}
	var wg sync.WaitGroup
	defer wg.Wait()

	var lck sync.Mutex
	var rows []*Row
	for index := first; index <= last; index++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("export: %w", ctx.Err())
		case err := <-errC:
			if err != nil {
				return nil, err
			}
		}
		*iteration++

		// Launch song export in a goroutine
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			debug("export: start song %d", index)
			row, err := e.song(ctx, index)
			if err != nil {
				log.Println(err)
			} else {
				lck.Lock()
				rows = append(rows, row)
				lck.Unlock()
			}
			errC <- err
			debug("export: end song %d", index)
		}(index)
	}

	// Collect the pending results
	wg.Wait()
	for i := 0; i < concurrency; i++ {
		if err := <-errC; err != nil {
			return nil, err
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Index < rows[j].Index
	})
	return rows, nil
}

func (e *exporter) song(ctx context.Context, index int) (*Row, error) {
	song := e.generator.Song(index, e.cfg.Seed, e.cfg.Language, e.cfg.AverageLikes)
	mediaSeed := seed.Media(e.cfg.Seed, index)
	name := fmt.Sprintf("%s-%d", e.id, index)

	cover, err := e.coverer.Cover(song.Title, song.Artist, mediaSeed)
	if err != nil {
		return nil, fmt.Errorf("export: couldn't generate cover %d: %w", index, err)
	}
	if err := e.fs.SetPNG(ctx, name, cover); err != nil {
		return nil, fmt.Errorf("export: couldn't upload cover %d: %w", index, err)
	}
	row := &Row{
		Index:  song.Index,
		Title:  song.Title,
		Artist: song.Artist,
		Album:  song.Album,
		Genre:  song.Genre,
		Likes:  song.Likes,
		Review: song.ReviewText,
		Cover:  filestore.PNG(name),
	}

	if !e.cfg.SkipAudio {
		audio, err := sound.Generate(mediaSeed, e.duration, e.channels)
		if err != nil {
			return nil, fmt.Errorf("export: couldn't generate audio %d: %w", index, err)
		}
		if err := e.fs.SetWAV(ctx, name, audio); err != nil {
			return nil, fmt.Errorf("export: couldn't upload audio %d: %w", index, err)
		}
		row.Audio = filestore.WAV(name)
	}

	if e.store != nil {
		if err := e.store.SetSong(ctx, &storage.Song{
			ID:       ulid.Make().String(),
			ExportID: e.id,
			Index:    row.Index,
			Title:    row.Title,
			Artist:   row.Artist,
			Album:    row.Album,
			Genre:    row.Genre,
			Likes:    row.Likes,
			Review:   row.Review,
			Cover:    row.Cover,
			Audio:    row.Audio,
		}); err != nil {
			return nil, fmt.Errorf("export: couldn't save song %d: %w", index, err)
		}
	}
	return row, nil
}

func (e *exporter) manifest(ctx context.Context, rows []*Row) error {
	b, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return fmt.Errorf("export: couldn't marshal csv: %w", err)
	}
	if err := e.fs.SetCSV(ctx, e.id, b); err != nil {
		return fmt.Errorf("export: couldn't upload csv: %w", err)
	}
	return nil
}
