package loader

import (
	"fmt"
	"os"
	"unicode/utf8"

	"greenlens/internal/domain"
)

// loadText reads a plain-text file as a single-page document.
func loadText(path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("file is not valid UTF-8 text")
	}

	return []domain.Page{{Number: 1, Text: string(data)}}, nil
}
