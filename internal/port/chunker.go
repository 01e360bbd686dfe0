package port

import "greenlens/internal/domain"

type Chunker interface {
	Split(doc domain.Document) ([]domain.Chunk, error)
}
