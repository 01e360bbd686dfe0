package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chunking.MaxChunkSize != 800 {
		t.Errorf("expected max chunk size 800, got %d", cfg.Chunking.MaxChunkSize)
	}
	if cfg.Chunking.Overlap != 100 {
		t.Errorf("expected overlap 100, got %d", cfg.Chunking.Overlap)
	}
	if cfg.Retrieve.TopK != 4 {
		t.Errorf("expected top_k 4, got %d", cfg.Retrieve.TopK)
	}
	if cfg.Live.Window != 30 {
		t.Errorf("expected live window 30, got %d", cfg.Live.Window)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/greenlens.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chunking.MaxChunkSize != 800 {
		t.Errorf("expected defaults, got max chunk size %d", cfg.Chunking.MaxChunkSize)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "greenlens.yaml")

	cfg := DefaultConfig()
	cfg.Chunking.MaxChunkSize = 400
	cfg.Retrieve.TopK = 8
	cfg.Generation.Provider = "openai"

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Chunking.MaxChunkSize != 400 {
		t.Errorf("expected max chunk size 400, got %d", loaded.Chunking.MaxChunkSize)
	}
	if loaded.Retrieve.TopK != 8 {
		t.Errorf("expected top_k 8, got %d", loaded.Retrieve.TopK)
	}
	if loaded.Generation.Provider != "openai" {
		t.Errorf("expected generation provider openai, got %s", loaded.Generation.Provider)
	}
}

func TestLoadFromDirFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("unexpected embedding model: %s", cfg.Embedding.Model)
	}
}

func TestLoadFromDirPrefersTopLevelFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.Addr = ":9000"
	if err := cfg.Save(filepath.Join(tmpDir, "greenlens.yaml")); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Addr != ":9000" {
		t.Errorf("expected addr :9000, got %s", loaded.Server.Addr)
	}
}

func TestIndexDBPath(t *testing.T) {
	path := IndexDBPath("/work")
	if path != filepath.Join("/work", ".greenlens", "index.db") {
		t.Errorf("unexpected index path: %s", path)
	}
}

func TestEnsureDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureDataDir(tmpDir); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(filepath.Join(tmpDir, ".greenlens"))
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Error("expected .greenlens to be a directory")
	}
}
