package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"travel-time-service/internal/domain"
)

func TestJSONLocationStoreLoadMissing(t *testing.T) {
	s := NewJSONLocationStore(filepath.Join(t.TempDir(), "data", "user_locations.json"))

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func TestJSONLocationStoreSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "user_locations.json")
	s := NewJSONLocationStore(path)
	ctx := context.Background()

	first := domain.Locations{Home: "Хан-Уул дүүрэг", School: "1-р сургууль", Work: "Сүхбаатарын талбай"}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := domain.Locations{Home: "Home 2"}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || *got != second {
		t.Fatalf("got %+v, want %+v", got, second)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the locations file, got %d entries", len(entries))
	}
}
