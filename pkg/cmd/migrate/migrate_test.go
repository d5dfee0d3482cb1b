package migrate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/igolaizola/musicstore/pkg/storage"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "db.sqlite")
	if err := Run(ctx, &Config{DBType: "sqlite", DBConn: db}); err != nil {
		t.Fatalf("Run() err = %v", err)
	}
	// Migrations are idempotent
	if err := Run(ctx, &Config{DBType: "sqlite", DBConn: db}); err != nil {
		t.Fatalf("Run() again err = %v", err)
	}

	store, err := storage.New("sqlite", db, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := store.ListExports(ctx, 1, 10, ""); err != nil {
		t.Errorf("ListExports() err = %v", err)
	}
}

func TestRunUnknownType(t *testing.T) {
	if err := Run(context.Background(), &Config{DBType: "mongo"}); err == nil {
		t.Error("Run() err = nil, want error")
	}
}
