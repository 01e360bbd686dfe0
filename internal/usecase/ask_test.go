package usecase

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"greenlens/internal/adapter/embedding"
	"greenlens/internal/adapter/index"
	"greenlens/internal/adapter/llm"
	"greenlens/internal/domain"
	"greenlens/internal/port"
)

func newTestIndex(t *testing.T) *index.BoltIndex {
	t.Helper()
	idx, err := index.Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func indexChunk(t *testing.T, idx *index.BoltIndex, emb port.Embedder, id, text string) {
	t.Helper()
	vectors, err := emb.Embed([]string{text})
	if err != nil {
		t.Fatal(err)
	}
	_, err = idx.Insert([]port.Record{{
		Chunk:  domain.Chunk{ID: id, DocID: "doc1", Source: "policy.pdf", Page: 1, Text: text},
		Vector: vectors[0],
	}})
	if err != nil {
		t.Fatal(err)
	}
}

func TestAnswerEmptyIndexFallback(t *testing.T) {
	idx := newTestIndex(t)
	emb := embedding.NewMockEmbedder(32)
	gen := llm.NewMockGenerator("should never be called")

	uc := NewAnswerUseCase(NewRetriever(emb, idx), gen, 4)

	answer, err := uc.Answer("What is the policy?")
	if err != nil {
		t.Fatal(err)
	}
	if answer != FallbackAnswer {
		t.Errorf("expected fallback answer, got %q", answer)
	}
	if gen.Calls() != 0 {
		t.Errorf("generator must not be called on empty retrieval, got %d calls", gen.Calls())
	}
}

func TestAnswerPromptContainsRetrievedChunk(t *testing.T) {
	idx := newTestIndex(t)
	emb := embedding.NewMockEmbedder(32)
	gen := llm.NewMockGenerator("  The policy requires quarterly disclosure.  ")

	chunkText := "All covered entities must disclose scope one emissions quarterly."
	indexChunk(t, idx, emb, "c1", chunkText)

	uc := NewAnswerUseCase(NewRetriever(emb, idx), gen, 4)

	answer, err := uc.Answer(chunkText)
	if err != nil {
		t.Fatal(err)
	}
	if answer != "The policy requires quarterly disclosure." {
		t.Errorf("expected trimmed generator response, got %q", answer)
	}
	if gen.Calls() != 1 {
		t.Fatalf("expected exactly one generation call, got %d", gen.Calls())
	}

	prompt := gen.Prompts[0]
	if !strings.Contains(prompt, chunkText) {
		t.Error("prompt does not contain the retrieved chunk text verbatim")
	}
	if !strings.Contains(prompt, "ESG compliance expert") {
		t.Error("prompt does not carry the role instruction")
	}
	if !strings.Contains(prompt, "Question:") {
		t.Error("prompt does not carry the question section")
	}
}

func TestRetrieveExactMatchFirst(t *testing.T) {
	idx := newTestIndex(t)
	emb := embedding.NewMockEmbedder(32)

	target := "Carbon offsets may not exceed ten percent of reported reductions."
	indexChunk(t, idx, emb, "other1", "Board oversight of sustainability reporting is mandatory.")
	indexChunk(t, idx, emb, "target", target)
	indexChunk(t, idx, emb, "other2", "Suppliers submit audited energy statements each March.")

	r := NewRetriever(emb, idx)
	results, err := r.Retrieve(target, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Chunk.ID != "target" {
		t.Errorf("expected exact-match chunk first, got %q", results[0].Chunk.ID)
	}
	if results[0].Score < 0.999 {
		t.Errorf("exact match should score ~1.0, got %f", results[0].Score)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Error("results not sorted best-first")
		}
	}
}

func TestRetrieveDefaultK(t *testing.T) {
	idx := newTestIndex(t)
	emb := embedding.NewMockEmbedder(32)

	for i, text := range []string{
		"First compliance clause.",
		"Second compliance clause.",
		"Third compliance clause.",
		"Fourth compliance clause.",
		"Fifth compliance clause.",
		"Sixth compliance clause.",
	} {
		indexChunk(t, idx, emb, strings.Repeat("c", i+1), text)
	}

	r := NewRetriever(emb, idx)
	results, err := r.Retrieve("compliance clause", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != DefaultTopK {
		t.Errorf("expected default k=%d results, got %d", DefaultTopK, len(results))
	}
}

func TestAnswerGenerationFailure(t *testing.T) {
	idx := newTestIndex(t)
	emb := embedding.NewMockEmbedder(32)

	gen := llm.NewMockGenerator("")
	gen.Err = errors.New("model overloaded")

	indexChunk(t, idx, emb, "c1", "Disclosure thresholds apply to all subsidiaries.")

	uc := NewAnswerUseCase(NewRetriever(emb, idx), gen, 4)

	_, err := uc.Answer("What thresholds apply?")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}

	var stage *domain.StageError
	if !errors.As(err, &stage) || stage.Stage != domain.StageGenerate {
		t.Errorf("expected generate stage error, got %v", err)
	}
}

func TestAnswerEmbeddingFailure(t *testing.T) {
	idx := newTestIndex(t)
	gen := llm.NewMockGenerator("unused")

	uc := NewAnswerUseCase(NewRetriever(failingEmbedder{}, idx), gen, 4)

	_, err := uc.Answer("What is the policy?")
	if !errors.Is(err, domain.ErrEmbeddingFailed) {
		t.Fatalf("expected ErrEmbeddingFailed, got %v", err)
	}
	if gen.Calls() != 0 {
		t.Errorf("generator must not be called when embedding fails, got %d calls", gen.Calls())
	}
}
