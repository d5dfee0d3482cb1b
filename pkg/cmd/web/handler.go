package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/igolaizola/musicstore/pkg/catalog"
	"github.com/igolaizola/musicstore/pkg/image"
	"github.com/igolaizola/musicstore/pkg/seed"
	"github.com/igolaizola/musicstore/pkg/sound"
	"github.com/igolaizola/musicstore/pkg/vocab"
)

const (
	DefaultSeed         = 42
	DefaultAverageLikes = 3.7
	DefaultPageSize     = 20
	MaxPageSize         = 100
)

type handler struct {
	cfg       Config
	generator *catalog.Generator
	coverer   *image.Coverer
	debug     func(format string, args ...interface{})
}

// NewHandler returns the catalog HTTP API. Zero config values are replaced by
// their defaults.
func NewHandler(cfg *Config) (http.Handler, error) {
	c := *cfg
	if c.Language == "" {
		c.Language = vocab.Default().Fallback()
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		c.PageSize = DefaultPageSize
	}
	if c.Duration < 1 {
		c.Duration = sound.DefaultDuration
	}
	if c.Channels < 1 {
		c.Channels = 1
	}
	if c.Concurrency < 1 {
		c.Concurrency = 4
	}

	renderer, err := image.DefaultRenderer()
	if err != nil {
		return nil, fmt.Errorf("web: couldn't load fonts: %w", err)
	}
	h := &handler{
		cfg:       c,
		generator: catalog.Default(),
		coverer:   image.NewCoverer(renderer),
		debug: func(format string, args ...interface{}) {
			if !c.Debug {
				return
			}
			format += "\n"
			log.Printf(format, args...)
		},
	}

	// Create router
	mux := chi.NewRouter()

	// Add middleware
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.Timeout(60 * time.Second))
	if c.Debug {
		mux.Use(middleware.Logger)
	}

	// Add BasicAuth middleware
	if len(c.Credentials) > 0 {
		mux.Use(middleware.BasicAuth("private", c.Credentials))
	}

	mux.Get("/languages", h.languages)
	mux.Get("/songs", h.songs)

	// Media generation is CPU bound
	mux.Group(func(r chi.Router) {
		r.Use(middleware.Throttle(c.Concurrency))
		r.Get("/songs/{index}", h.song)
		r.Get("/audio/{index}", h.audio)
		r.Get("/audio/{index}/waveform", h.waveform)
	})
	return mux, nil
}

func (h *handler) languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, vocab.Default().Names())
}

func (h *handler) songs(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	size := queryInt(r, "pageSize", h.cfg.PageSize)
	if size < 1 {
		size = h.cfg.PageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	base := h.baseSeed(r)
	language := h.language(r)
	likes := queryFloat(r, "averageLikes", h.averageLikes())

	h.debug("web: songs page=%d size=%d seed=%d language=%s likes=%v", page, size, base, language, likes)
	writeJSON(w, h.generator.Page(page, size, base, language, likes))
}

func (h *handler) song(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	base := h.baseSeed(r)
	song := h.generator.Song(index, base, h.language(r), queryFloat(r, "averageLikes", h.averageLikes()))

	cover, err := h.coverer.Cover(song.Title, song.Artist, seed.Media(base, index))
	if err != nil {
		log.Println("web: couldn't generate cover:", err)
		http.Error(w, fmt.Sprintf("couldn't generate cover: %v", err), http.StatusInternalServerError)
		return
	}
	song.CoverImage = cover
	writeJSON(w, song)
}

func (h *handler) audio(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	b, err := sound.Generate(seed.Media(h.baseSeed(r), index), h.cfg.Duration, h.cfg.Channels)
	if err != nil {
		log.Println("web: couldn't generate audio:", err)
		http.Error(w, fmt.Sprintf("couldn't generate audio: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	if _, err := w.Write(b); err != nil {
		h.debug("web: couldn't write audio: %v", err)
	}
}

func (h *handler) waveform(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	b, err := sound.Generate(seed.Media(h.baseSeed(r), index), h.cfg.Duration, 1)
	if err != nil {
		log.Println("web: couldn't generate audio:", err)
		http.Error(w, fmt.Sprintf("couldn't generate audio: %v", err), http.StatusInternalServerError)
		return
	}
	a, err := sound.NewAnalyzer(b)
	if err != nil {
		log.Println("web: couldn't analyze audio:", err)
		http.Error(w, fmt.Sprintf("couldn't analyze audio: %v", err), http.StatusInternalServerError)
		return
	}
	plot, err := a.PlotWave(fmt.Sprintf("song %d", index))
	if err != nil {
		log.Println("web: couldn't plot waveform:", err)
		http.Error(w, fmt.Sprintf("couldn't plot waveform: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := w.Write(plot); err != nil {
		h.debug("web: couldn't write waveform: %v", err)
	}
}

func (h *handler) baseSeed(r *http.Request) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get("seed"), 10, 64)
	if err != nil {
		return h.cfg.Seed
	}
	return v
}

func (h *handler) language(r *http.Request) string {
	if v := r.URL.Query().Get("language"); v != "" {
		return v
	}
	return h.cfg.Language
}

func (h *handler) averageLikes() float64 {
	if h.cfg.AverageLikes == 0 {
		return DefaultAverageLikes
	}
	return h.cfg.AverageLikes
}

func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := chi.URLParam(r, "index")
	index, err := strconv.Atoi(v)
	if err != nil || index < 1 {
		http.Error(w, fmt.Sprintf("invalid index %q", v), http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(key), 64)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("web: couldn't encode response:", err)
		http.Error(w, fmt.Sprintf("couldn't encode response: %v", err), http.StatusInternalServerError)
	}
}
