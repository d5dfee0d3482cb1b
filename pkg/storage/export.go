package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Export is a snapshot of a range of catalog pages.
type Export struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Seed         int64   `gorm:"not null;default:0"`
	Language     string  `gorm:"not null;default:''"`
	AverageLikes float64 `gorm:"not null;default:0"`
	FromPage     int     `gorm:"not null;default:0"`
	ToPage       int     `gorm:"not null;default:0"`
	PageSize     int     `gorm:"not null;default:0"`
	Songs        int     `gorm:"not null;default:0"`

	State State `gorm:"index"`
}

func (s *Store) GetExport(ctx context.Context, id string) (*Export, error) {
	var v Export
	if err := s.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: failed to get export %s: %w", id, err)
	}
	return &v, nil
}

func (s *Store) SetExport(ctx context.Context, v *Export) error {
	if err := s.db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("storage: failed to set export %s: %w", v.ID, err)
	}
	return nil
}

func (s *Store) ListExports(ctx context.Context, page, size int, orderBy string, filter ...Filter) ([]*Export, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * size
	vs := []*Export{}

	q := s.db.WithContext(ctx).Offset(offset).Limit(size)
	for _, f := range filter {
		q = q.Where(f.Query, f.Args...)
	}
	if orderBy != "" {
		q = q.Order(orderBy)
	}
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list exports: %w", err)
	}
	return vs, nil
}
