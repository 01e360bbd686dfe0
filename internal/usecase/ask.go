package usecase

import (
	"fmt"
	"strings"

	"greenlens/internal/domain"
	"greenlens/internal/port"
)

// FallbackAnswer is returned when the index holds nothing relevant. It is
// a designed response, not an error, and no generation call is made.
const FallbackAnswer = "No relevant context found in indexed documents. Try ingesting more PDFs."

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 4

// Retriever embeds a question and finds the nearest indexed chunks.
// It is a thin composition point over the embedder and the index, not a
// re-ranker.
type Retriever struct {
	embedder port.Embedder
	index    port.VectorIndex
}

func NewRetriever(embedder port.Embedder, index port.VectorIndex) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

func (r *Retriever) Retrieve(question string, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	vectors, err := r.embedder.Embed([]string{question})
	if err != nil {
		return nil, domain.Fail(domain.StageEmbed, domain.ErrEmbeddingFailed, err)
	}
	if len(vectors) == 0 {
		return nil, domain.Fail(domain.StageEmbed, domain.ErrEmbeddingFailed,
			fmt.Errorf("embedder returned no vector for the question"))
	}

	results, err := r.index.Search(vectors[0], k)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// AnswerUseCase assembles retrieved context into a prompt and asks the
// generator once. Each question is independent; there is no conversation
// state.
type AnswerUseCase struct {
	retriever *Retriever
	generator port.Generator
	topK      int
}

func NewAnswerUseCase(retriever *Retriever, generator port.Generator, topK int) *AnswerUseCase {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerUseCase{
		retriever: retriever,
		generator: generator,
		topK:      topK,
	}
}

func (u *AnswerUseCase) Answer(question string) (string, error) {
	chunks, err := u.retriever.Retrieve(question, u.topK)
	if err != nil {
		return "", err
	}

	if len(chunks) == 0 {
		return FallbackAnswer, nil
	}

	prompt := BuildPrompt(question, chunks)
	response, err := u.generator.Generate(prompt)
	if err != nil {
		return "", domain.Fail(domain.StageGenerate, domain.ErrGenerationFailed, err)
	}

	return strings.TrimSpace(response), nil
}

// BuildPrompt embeds the retrieved context and the question into the
// compliance-expert instruction.
func BuildPrompt(question string, chunks []domain.ScoredChunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Chunk.Text
	}
	context := strings.Join(texts, "\n\n")

	var sb strings.Builder
	sb.WriteString("You are an ESG compliance expert.\n")
	sb.WriteString("Based on the following documents, answer this question precisely.\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(context)
	sb.WriteString("\n\nQuestion:\n")
	sb.WriteString(question)
	sb.WriteString("\n\nProvide a clear, well-structured explanation.\n")
	return sb.String()
}
