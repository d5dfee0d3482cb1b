package catalog

import (
	"math"
	"reflect"
	"testing"

	"github.com/igolaizola/musicstore/pkg/seed"
	"github.com/igolaizola/musicstore/pkg/vocab"
)

func TestSongDeterministic(t *testing.T) {
	g := Default()
	for _, lang := range []string{"en-US", "ru-RU", "de-DE", "xx-XX"} {
		for index := 1; index <= 50; index++ {
			a := g.Song(index, 42, lang, 3.7)
			b := Default().Song(index, 42, lang, 3.7)
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("Song(%d, 42, %s) not deterministic: %+v != %+v", index, lang, a, b)
			}
		}
	}
}

func TestSongFields(t *testing.T) {
	g := Default()
	_, l := vocab.Default().Lookup("en-US")
	for index := 1; index <= 200; index++ {
		s := g.Song(index, 7, "en-US", 5)
		if s.Index != index {
			t.Errorf("Index = %d, want %d", s.Index, index)
		}
		if s.Title == "" || s.Artist == "" || s.Album == "" {
			t.Errorf("song %d has empty fields: %+v", index, s)
		}
		if !contains(l.Genres, s.Genre) {
			t.Errorf("song %d genre %q not in vocabulary", index, s.Genre)
		}
		if !contains(l.Reviews, s.ReviewText) {
			t.Errorf("song %d review %q not in vocabulary", index, s.ReviewText)
		}
		if s.Likes < 0 || s.Likes > 10 {
			t.Errorf("song %d likes %d out of range", index, s.Likes)
		}
		if s.CoverImage != nil || s.AudioData != nil {
			t.Errorf("song %d should not carry media", index)
		}
	}
}

func TestSongAlbumSingleRatio(t *testing.T) {
	g := Default()
	n := 3000
	var singles int
	for index := 1; index <= n; index++ {
		if g.Song(index, 99, "en-US", 1).Album == Single {
			singles++
		}
	}
	ratio := float64(singles) / float64(n)
	if ratio < 0.25 || ratio > 0.42 {
		t.Errorf("singles ratio = %.3f, want about 1/3", ratio)
	}
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	g := Default()
	for index := 1; index <= 20; index++ {
		a := g.Song(index, 1, "en-US", 2)
		b := g.Song(index, 1, "pt-BR", 2)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("song %d: unknown language should match fallback: %+v != %+v", index, a, b)
		}
	}
}

func TestPageIndexIndependence(t *testing.T) {
	g := Default()
	const index = 37
	want := g.Song(index, 42, "ru-RU", 4.2)
	for _, size := range []int{1, 5, 10, 20, 37, 50} {
		page := (index-1)/size + 1
		p := g.Page(page, size, 42, "ru-RU", 4.2)
		got := p.Songs[(index-1)%size]
		if !reflect.DeepEqual(got, want) {
			t.Errorf("page %d size %d: song %+v, want %+v", page, size, got, want)
		}
	}
}

func TestPage(t *testing.T) {
	g := Default()
	p := g.Page(3, 10, 5, "en-US", 3.7)
	if len(p.Songs) != 10 {
		t.Fatalf("len(Songs) = %d, want 10", len(p.Songs))
	}
	for i, s := range p.Songs {
		if want := 21 + i; s.Index != want {
			t.Errorf("Songs[%d].Index = %d, want %d", i, s.Index, want)
		}
	}
	if p.CurrentPage != 3 || p.TotalPages != TotalPages {
		t.Errorf("page = %d/%d, want 3/%d", p.CurrentPage, p.TotalPages, TotalPages)
	}
}

func TestPageNonPositive(t *testing.T) {
	g := Default()
	if p := g.Page(1, 0, 5, "en-US", 3.7); len(p.Songs) != 0 {
		t.Errorf("size 0: len(Songs) = %d, want 0", len(p.Songs))
	}
	if p := g.Page(1, -3, 5, "en-US", 3.7); len(p.Songs) != 0 {
		t.Errorf("size -3: len(Songs) = %d, want 0", len(p.Songs))
	}
	p := g.Page(0, 2, 5, "en-US", 3.7)
	if p.CurrentPage != 1 || p.Songs[0].Index != 1 {
		t.Errorf("page 0: current %d first index %d, want 1 and 1", p.CurrentPage, p.Songs[0].Index)
	}
}

func TestLikesExpectation(t *testing.T) {
	const n = 100000
	const avg = 3.7
	var sum int
	for i := 1; i <= n; i++ {
		song := seed.Song(42, i)
		sum += Likes(avg, seed.New(seed.Stream(song, seed.LikesModifier)))
	}
	mean := float64(sum) / n
	if math.Abs(mean-avg) > 0.05 {
		t.Errorf("mean likes = %.4f, want %.1f ± 0.05", mean, avg)
	}
}

func TestLikesBoundaries(t *testing.T) {
	tests := []struct {
		avg  float64
		want int
	}{
		{0, 0},
		{-1, 0},
		{-100, 0},
		{math.NaN(), 0},
		{10, 10},
		{10.5, 10},
		{1000, 10},
		{math.Inf(1), 10},
		{4, 4},
	}
	for _, tt := range tests {
		for i := int64(0); i < 100; i++ {
			if got := Likes(tt.avg, seed.New(i)); got != tt.want {
				t.Fatalf("Likes(%v) = %d, want %d", tt.avg, got, tt.want)
			}
		}
	}
}

func TestLikesRange(t *testing.T) {
	for i := int64(0); i < 1000; i++ {
		got := Likes(6.25, seed.New(i))
		if got != 6 && got != 7 {
			t.Fatalf("Likes(6.25) = %d, want 6 or 7", got)
		}
	}
}

func TestStreamIndependence(t *testing.T) {
	g := Default()
	for index := 1; index <= 100; index++ {
		a := g.Song(index, 42, "en-US", 1.5)
		b := g.Song(index, 42, "en-US", 8.5)
		if a.Title != b.Title || a.Artist != b.Artist || a.Album != b.Album ||
			a.Genre != b.Genre || a.ReviewText != b.ReviewText {
			t.Errorf("song %d: averageLikes changed text fields: %+v vs %+v", index, a, b)
		}
		for _, lang := range []string{"ru-RU", "de-DE"} {
			c := g.Song(index, 42, lang, 1.5)
			if c.Likes != a.Likes {
				t.Errorf("song %d: language %s changed likes %d -> %d", index, lang, a.Likes, c.Likes)
			}
		}
	}
}

func TestSeedChangesSongs(t *testing.T) {
	g := Default()
	var same int
	for index := 1; index <= 50; index++ {
		if reflect.DeepEqual(g.Song(index, 1, "en-US", 3), g.Song(index, 2, "en-US", 3)) {
			same++
		}
	}
	if same > 5 {
		t.Errorf("%d of 50 songs identical across seeds", same)
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
