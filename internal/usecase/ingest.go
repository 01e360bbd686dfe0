package usecase

import (
	"fmt"

	"greenlens/internal/domain"
	"greenlens/internal/port"
)

// IngestUseCase runs one document through load → chunk → embed → index.
type IngestUseCase struct {
	loader   port.Loader
	chunker  port.Chunker
	embedder port.Embedder
	index    port.VectorIndex
}

func NewIngestUseCase(
	loader port.Loader,
	chunker port.Chunker,
	embedder port.Embedder,
	index port.VectorIndex,
) *IngestUseCase {
	return &IngestUseCase{
		loader:   loader,
		chunker:  chunker,
		embedder: embedder,
		index:    index,
	}
}

// Ingest loads the document at path, chunks and embeds its text, and
// appends all resulting records to the index in one logical insertion.
// On any failure nothing is stored; the caller retries the whole document.
func (u *IngestUseCase) Ingest(path string) (*domain.IngestSummary, error) {
	doc, err := u.loader.Load(path)
	if err != nil {
		return nil, err
	}

	chunks, err := u.chunker.Split(doc)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageChunk, Err: err}
	}

	if len(chunks) == 0 {
		return &domain.IngestSummary{Source: doc.Source, Pages: len(doc.Pages)}, nil
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}

	vectors, err := u.embedder.Embed(texts)
	if err != nil {
		return nil, domain.Fail(domain.StageEmbed, domain.ErrEmbeddingFailed, err)
	}
	if len(vectors) != len(chunks) {
		return nil, domain.Fail(domain.StageEmbed, domain.ErrEmbeddingFailed,
			fmt.Errorf("expected %d vectors, got %d", len(chunks), len(vectors)))
	}

	records := make([]port.Record, len(chunks))
	for i := range chunks {
		records[i] = port.Record{Chunk: chunks[i], Vector: vectors[i]}
	}

	stored, err := u.index.Insert(records)
	if err != nil {
		return nil, err
	}

	return &domain.IngestSummary{
		Source: doc.Source,
		Pages:  len(doc.Pages),
		Chunks: stored,
	}, nil
}
