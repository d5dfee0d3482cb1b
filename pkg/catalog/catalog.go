package catalog

import (
	"math"
	"math/rand"

	"github.com/igolaizola/musicstore/pkg/seed"
	"github.com/igolaizola/musicstore/pkg/vocab"
)

// TotalPages is reported to clients for pagination only, the catalog is
// unbounded.
const TotalPages = 100

// Single is the album name of songs not released on an album.
const Single = "Single"

type Song struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	Genre      string `json:"genre"`
	Likes      int    `json:"likes"`
	ReviewText string `json:"reviewText"`
	CoverImage []byte `json:"coverImage,omitempty"`
	AudioData  []byte `json:"-"`
}

type Page struct {
	Songs       []*Song `json:"songs"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
}

// Generator derives song metadata from vocabulary tables.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	vocab *vocab.Set
}

func New(v *vocab.Set) *Generator {
	return &Generator{vocab: v}
}

// Default returns a generator backed by the embedded vocabulary.
func Default() *Generator {
	return New(vocab.Default())
}

// Song generates the metadata of the song at the given catalog index.
func (g *Generator) Song(index int, baseSeed int64, language string, averageLikes float64) *Song {
	songSeed := seed.Song(baseSeed, index)
	rnd := seed.New(seed.Mask(songSeed))
	_, l := g.vocab.Lookup(language)

	title := pick(rnd, l.Words) + " " + pick(rnd, l.Words)

	var artist string
	if rnd.Intn(2) == 0 {
		artist = pick(rnd, l.Words) + " " + pick(rnd, l.ArtistTypes)
	} else {
		artist = fullName(seed.New(seed.Mask(songSeed)), l)
	}

	album := Single
	if rnd.Intn(3) != 0 {
		album = pick(rnd, l.AlbumWords) + " " + pick(rnd, l.Words)
	}

	genre := pick(rnd, l.Genres)

	likes := Likes(averageLikes, seed.New(seed.Stream(songSeed, seed.LikesModifier)))
	review := pick(seed.New(seed.Stream(songSeed, seed.ReviewModifier)), l.Reviews)

	return &Song{
		Index:      index,
		Title:      title,
		Artist:     artist,
		Album:      album,
		Genre:      genre,
		Likes:      likes,
		ReviewText: review,
	}
}

// Page generates the songs of a 1-based page. A page lower than 1 is treated
// as the first page and a non-positive size yields no songs.
func (g *Generator) Page(page, pageSize int, baseSeed int64, language string, averageLikes float64) *Page {
	if page < 1 {
		page = 1
	}
	songs := []*Song{}
	if pageSize > 0 {
		start := (page-1)*pageSize + 1
		for i := 0; i < pageSize; i++ {
			songs = append(songs, g.Song(start+i, baseSeed, language, averageLikes))
		}
	}
	return &Page{
		Songs:       songs,
		TotalPages:  TotalPages,
		CurrentPage: page,
	}
}

// Likes draws a likes count whose expected value is the given average.
// Averages are clamped to [0, 10].
func Likes(averageLikes float64, rnd *rand.Rand) int {
	if !(averageLikes > 0) {
		return 0
	}
	if averageLikes >= 10 {
		return 10
	}
	floor := math.Floor(averageLikes)
	likes := int(floor)
	if rnd.Float64() < averageLikes-floor {
		likes++
	}
	return likes
}

func fullName(rnd *rand.Rand, l *vocab.Locale) string {
	return pick(rnd, l.FirstNames) + " " + pick(rnd, l.LastNames)
}

func pick(rnd *rand.Rand, list []string) string {
	return list[rnd.Intn(len(list))]
}
