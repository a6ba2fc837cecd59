package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultHasSaneEngineSettings(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 64, cfg.Engine.HashSizeMB)
	assert.Equal(t, 1, cfg.Engine.Threads)
}

func TestLoadOverridesDefaultsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chesscore.toml")
	contents := "[engine]\nhash_size_mb = 256\nthreads = 4\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assert.Equal(t, 256, cfg.Engine.HashSizeMB)
	assert.Equal(t, 4, cfg.Engine.Threads)
}

func TestLoadFillsUnsetFieldsFromDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chesscore.toml")
	contents := "[engine]\nthreads = 8\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assert.Equal(t, 64, cfg.Engine.HashSizeMB, "unset field should keep Default()'s value")
	assert.Equal(t, 8, cfg.Engine.Threads)
}

func TestLoadReturnsErrorOnMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatal("Load should error on a missing file")
	}
}

func TestLoadReturnsErrorOnMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chesscore.toml")
	if err := os.WriteFile(path, []byte("not valid [[[ toml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load should error on malformed TOML")
	}
}
