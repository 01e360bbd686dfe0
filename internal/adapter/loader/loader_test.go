package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"greenlens/internal/domain"
)

func TestLoadTextFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "policy.txt")
	content := "Energy usage must be reported quarterly.\n\nRenewable share targets apply."
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Source != "policy.txt" {
		t.Errorf("expected source 'policy.txt', got %q", doc.Source)
	}
	if doc.ID == "" {
		t.Error("expected a document ID")
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	if doc.Pages[0].Number != 1 {
		t.Errorf("expected page number 1, got %d", doc.Pages[0].Number)
	}
	if doc.Pages[0].Text != content {
		t.Errorf("page text does not match file content")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewFileLoader().Load("/nonexistent/policy.pdf")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}

	var stage *domain.StageError
	if !errors.As(err, &stage) {
		t.Fatal("expected a StageError")
	}
	if stage.Stage != domain.StageLoad {
		t.Errorf("expected stage %q, got %q", domain.StageLoad, stage.Stage)
	}
}

func TestLoadDirectory(t *testing.T) {
	_, err := NewFileLoader().Load(t.TempDir())
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound for a directory, got %v", err)
	}
}

func TestLoadBinaryFileUnreadable(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "blob.dat")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x81}, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileLoader().Load(path)
	if !errors.Is(err, domain.ErrUnreadableDocument) {
		t.Errorf("expected ErrUnreadableDocument, got %v", err)
	}
}

func TestLoadCorruptPDFUnreadable(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "broken.pdf")
	if err := os.WriteFile(path, []byte("not actually a pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileLoader().Load(path)
	if !errors.Is(err, domain.ErrUnreadableDocument) {
		t.Errorf("expected ErrUnreadableDocument, got %v", err)
	}
}

func TestDocIDStableAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "policy.txt")
	if err := os.WriteFile(path, []byte("stable"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewFileLoader()
	a, err := l.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := l.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != b.ID {
		t.Errorf("expected stable doc ID, got %s and %s", a.ID, b.ID)
	}
}
