package port

import "greenlens/internal/domain"

// Loader extracts per-page text from a document on disk.
type Loader interface {
	Load(path string) (domain.Document, error)
}
