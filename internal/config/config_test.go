package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/poku-e/culinart/internal/api"
	"github.com/poku-e/culinart/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "unit")
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Env != "unit" || c.Addr != ":8080" || c.Locale != "id" {
		t.Fatalf("conf = %+v", c)
	}
	if c.APIBaseURL != api.DefaultBaseURL || c.SubmitPath != api.DefaultSubmitPath {
		t.Fatalf("api = %q %q", c.APIBaseURL, c.SubmitPath)
	}
	if opts := c.StorageOptions(); opts.Driver != storage.DriverFile || opts.Path == "" {
		t.Fatalf("storage = %+v", opts)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `addr: ":9090"
locale: en
allow-origins:
  - http://localhost:3000
storage:
  driver: sqlite
  path: fav.db
`
	if err := os.WriteFile(filepath.Join(dir, "unit.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENV", "unit")
	t.Setenv("CULINART_ADDR", ":7070")
	t.Setenv("CULINART_STORAGE_PATH", "other.db")

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Addr != ":7070" {
		t.Errorf("addr = %q, env should win", c.Addr)
	}
	if c.Locale != "en" {
		t.Errorf("locale = %q", c.Locale)
	}
	if len(c.AllowOrigins) != 1 || c.AllowOrigins[0] != "http://localhost:3000" {
		t.Errorf("origins = %v", c.AllowOrigins)
	}
	if c.Storage.Driver != storage.DriverSQLite || c.Storage.Path != "other.db" {
		t.Errorf("storage = %+v", c.Storage)
	}
}

func TestLoadBadFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "unit.yaml"), []byte("addr: [unclosed"), 0o644)
	t.Setenv("ENV", "unit")
	if _, err := Load(dir); err == nil {
		t.Fatal("malformed yaml should fail")
	}
}

func TestSetupLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	SetupLogging(Production, "")
	if log.GetLevel() != log.ErrorLevel {
		t.Fatalf("level = %v", log.GetLevel())
	}
	if _, ok := log.StandardLogger().Formatter.(*log.JSONFormatter); !ok {
		t.Fatal("production should log JSON")
	}
	SetupLogging(Development, "warn")
	if log.GetLevel() != log.WarnLevel {
		t.Fatalf("override level = %v", log.GetLevel())
	}
	SetupLogging(Development, "loud")
	if log.GetLevel() != log.DebugLevel {
		t.Fatalf("bad override should keep default, got %v", log.GetLevel())
	}
}
