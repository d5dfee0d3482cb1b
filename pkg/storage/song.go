package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Song is a generated song stored as part of an export.
// Cover and Audio hold the file store names of the media.
type Song struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ExportID string `gorm:"index;not null;default:''"`
	Index    int    `gorm:"column:song_index;not null;default:0"`

	Title  string `gorm:"not null;default:''"`
	Artist string `gorm:"not null;default:''"`
	Album  string `gorm:"not null;default:''"`
	Genre  string `gorm:"not null;default:''"`
	Likes  int    `gorm:"not null;default:0"`
	Review string `gorm:"not null;default:''"`

	Cover string `gorm:"not null;default:''"`
	Audio string `gorm:"not null;default:''"`
}

func (s *Store) GetSong(ctx context.Context, id string) (*Song, error) {
	var v Song
	if err := s.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: failed to get song %s: %w", id, err)
	}
	return &v, nil
}

func (s *Store) SetSong(ctx context.Context, v *Song) error {
	if err := s.db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("storage: failed to set song %s: %w", v.ID, err)
	}
	return nil
}

func (s *Store) DeleteSong(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&Song{ID: id}, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("storage: failed to delete song %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListSongs(ctx context.Context, page, size int, orderBy string, filter ...Filter) ([]*Song, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * size
	vs := []*Song{}

	q := s.db.WithContext(ctx).Offset(offset).Limit(size)
	for _, f := range filter {
		q = q.Where(f.Query, f.Args...)
	}
	// Order by
	if orderBy != "" {
		q = q.Order(orderBy)
	}
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list songs: %w", err)
	}
	return vs, nil
}

func (s *Store) CountSongs(ctx context.Context, filter ...Filter) (int, error) {
	q := s.db.WithContext(ctx).Model(&Song{})
	for _, f := range filter {
		q = q.Where(f.Query, f.Args...)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("storage: failed to count songs: %w", err)
	}
	return int(n), nil
}
