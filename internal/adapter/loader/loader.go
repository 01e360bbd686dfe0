package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"greenlens/internal/domain"
)

// FileLoader loads a document from disk, extracting per-page text.
// PDFs are read page by page; anything else is treated as plain text
// with a single page.
type FileLoader struct{}

func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

func (l *FileLoader) Load(path string) (domain.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Document{}, domain.Fail(domain.StageLoad, domain.ErrDocumentNotFound, err)
	}
	if info.IsDir() {
		return domain.Document{}, domain.Fail(domain.StageLoad, domain.ErrDocumentNotFound, errors.New("path is a directory"))
	}

	var pages []domain.Page
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		pages, err = loadPDF(path)
	default:
		pages, err = loadText(path)
	}
	if err != nil {
		return domain.Document{}, domain.Fail(domain.StageLoad, domain.ErrUnreadableDocument, err)
	}

	return domain.Document{
		ID:     generateDocID(path),
		Path:   path,
		Source: filepath.Base(path),
		Pages:  pages,
	}, nil
}

// generateDocID creates a unique ID for a document based on its path.
func generateDocID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}
