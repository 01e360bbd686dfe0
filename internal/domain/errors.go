package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrUnreadableDocument = errors.New("document could not be read")
	ErrEmbeddingFailed    = errors.New("embedding failed")
	ErrDimensionMismatch  = errors.New("vector dimension mismatch")
	ErrIndexUnavailable   = errors.New("vector index unavailable")
	ErrGenerationFailed   = errors.New("generation failed")
)

// Pipeline stages, used to tag errors with where they occurred.
const (
	StageLoad     = "load"
	StageChunk    = "chunk"
	StageEmbed    = "embed"
	StageIndex    = "index"
	StageRetrieve = "retrieve"
	StageGenerate = "generate"
)

// StageError wraps an underlying failure with the pipeline stage it
// occurred in. errors.Is reaches through to the sentinel.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Fail tags err with a stage and a sentinel from the taxonomy above.
func Fail(stage string, sentinel error, err error) error {
	return &StageError{Stage: stage, Err: fmt.Errorf("%w: %w", sentinel, err)}
}
