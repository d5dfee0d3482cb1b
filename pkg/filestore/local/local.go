package local

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type Store struct {
	root  string
	debug bool
}

// New returns a store that writes files under root, creating it if needed.
func New(root string, debug bool) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("local: root folder is required")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("local: couldn't create folder %q: %w", root, err)
	}
	return &Store{root: root, debug: debug}, nil
}

func (s *Store) Upload(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := filepath.Join(s.root, name)
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("local: couldn't write file %q: %w", dst, err)
	}
	if s.debug {
		log.Println("local: wrote", dst, len(data))
	}
	return nil
}
