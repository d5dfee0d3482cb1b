package filestore

import (
	"context"
	"fmt"
	"strings"

	"github.com/igolaizola/musicstore/pkg/filestore/local"
	"github.com/igolaizola/musicstore/pkg/filestore/s3"
)

type fs interface {
	Upload(ctx context.Context, name string, data []byte) error
}

// Store saves generated media under predictable names.
type Store struct {
	fs fs
}

func (s *Store) SetPNG(ctx context.Context, id string, data []byte) error {
	return s.fs.Upload(ctx, PNG(id), data)
}

func (s *Store) SetWAV(ctx context.Context, id string, data []byte) error {
	return s.fs.Upload(ctx, WAV(id), data)
}

func (s *Store) SetCSV(ctx context.Context, id string, data []byte) error {
	return s.fs.Upload(ctx, CSV(id), data)
}

// New creates a file store. Supported types are local, where conn is the
// root folder, and s3, where conn is key:secret@bucket.region.
func New(typ, conn string, debug bool) (*Store, error) {
	var fs fs
	switch typ {
	case "s3":
		split := strings.Split(conn, "@")
		if len(split) != 2 {
			return nil, fmt.Errorf("filestore: invalid s3 connection string %q", conn)
		}
		auth := strings.Split(split[0], ":")
		if len(auth) != 2 {
			return nil, fmt.Errorf("filestore: invalid s3 auth string %q", conn)
		}
		key := auth[0]
		secret := auth[1]
		loc := strings.Split(split[1], ".")
		if len(loc) != 2 {
			return nil, fmt.Errorf("filestore: invalid s3 location string %q", conn)
		}
		bucket := loc[0]
		region := loc[1]
		candidate, err := s3.New(key, secret, region, bucket, debug)
		if err != nil {
			return nil, fmt.Errorf("filestore: %w", err)
		}
		fs = candidate
	case "local":
		candidate, err := local.New(conn, debug)
		if err != nil {
			return nil, fmt.Errorf("filestore: %w", err)
		}
		fs = candidate
	default:
		return nil, fmt.Errorf("filestore: unknown file storage type %q", typ)
	}
	return &Store{fs: fs}, nil
}

func PNG(id string) string {
	return id + ".png"
}

func WAV(id string) string {
	return id + ".wav"
}

func CSV(id string) string {
	return id + ".csv"
}
