package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "slots.json")

	p, err := Open(ctx, Options{Driver: DriverFile, Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := p.Load(ctx, "favorite-restaurants"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load on fresh store err = %v, want ErrNotFound", err)
	}
	if err := p.Save(ctx, "favorite-restaurants", []byte(`["a","b"]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}

	// a second store over the same file sees the value
	again := &FileStore{Path: path}
	if err := again.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	got, err := again.Load(ctx, "favorite-restaurants")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != `["a","b"]` {
		t.Fatalf("Load = %s", got)
	}
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(context.Background(), Options{Path: path}); err == nil {
		t.Fatal("Open should fail on a corrupt document")
	}
}

func TestFileStoreEmptyPath(t *testing.T) {
	fs := &FileStore{}
	if err := fs.Reload(); err == nil {
		t.Fatal("Reload with empty path should fail")
	}
	if err := fs.Save(context.Background(), "k", nil); err == nil {
		t.Fatal("Save with empty path should fail")
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if _, err := m.Load(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	v := []byte("one")
	if err := m.Save(ctx, "k", v); err != nil {
		t.Fatal(err)
	}
	v[0] = 'X'
	got, _ := m.Load(ctx, "k")
	if string(got) != "one" {
		t.Fatalf("Memory should copy on save, got %s", got)
	}
	if m.Saves() != 1 {
		t.Fatalf("Saves = %d", m.Saves())
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Options{Driver: "redis"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestSQLiteUpsert(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "slots.db")
	port, err := Open(ctx, Options{Driver: DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	db := port.(*SQLite)
	defer db.Close()

	if _, err := db.Load(ctx, "favorite-restaurants"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	for _, v := range []string{`["a"]`, `["a","b"]`} {
		if err := db.Save(ctx, "favorite-restaurants", []byte(v)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	got, err := db.Load(ctx, "favorite-restaurants")
	if err != nil || string(got) != `["a","b"]` {
		t.Fatalf("Load = %s, %v", got, err)
	}
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("CULINART_TEST_DSN")
	if dsn == "" {
		t.Skip("CULINART_TEST_DSN not set")
	}
	ctx := context.Background()
	p, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	defer p.Close()

	key := "test-" + t.Name()
	if err := p.Save(ctx, key, []byte(`["x"]`)); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(ctx, key, []byte(`["y"]`)); err != nil {
		t.Fatal(err)
	}
	got, err := p.Load(ctx, key)
	if err != nil || string(got) != `["y"]` {
		t.Fatalf("Load = %s, %v", got, err)
	}
	if _, err := p.Load(ctx, "never-written"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestOpenPostgresNeedsDSN(t *testing.T) {
	if _, err := Open(context.Background(), Options{Driver: DriverPostgres}); err == nil {
		t.Fatal("empty dsn should fail")
	}
}
