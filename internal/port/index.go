package port

import "greenlens/internal/domain"

// Record is one (chunk, vector) pair to be stored in the index.
type Record struct {
	Chunk  domain.Chunk
	Vector []float32
}

// VectorIndex stores embedding records durably and supports
// nearest-neighbor search. Records are append-only: inserts accumulate
// across process lifetimes and are never mutated in place.
type VectorIndex interface {
	// Insert appends records, assigning each a unique id.
	// Returns the number of records inserted.
	Insert(records []Record) (int, error)

	// Search returns up to k records nearest to the query vector,
	// best-first. An empty index yields an empty result, not an error.
	Search(query []float32, k int) ([]domain.ScoredChunk, error)

	// Stats describes the current index contents.
	Stats() (domain.IndexStats, error)

	Close() error
}
