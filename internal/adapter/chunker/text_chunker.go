package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"greenlens/internal/domain"
)

// TextChunker splits page text into overlapping spans of at most maxSize
// characters, preferring paragraph, then sentence, then word boundaries.
// Chunks are literal spans of the input, so concatenating them with the
// overlaps removed reproduces the original text.
type TextChunker struct {
	maxSize int
	overlap int
}

func NewTextChunker(maxSize, overlap int) *TextChunker {
	if overlap >= maxSize {
		overlap = maxSize / 2
	}
	return &TextChunker{
		maxSize: maxSize,
		overlap: overlap,
	}
}

func (c *TextChunker) Split(doc domain.Document) ([]domain.Chunk, error) {
	var chunks []domain.Chunk

	for _, page := range doc.Pages {
		for _, span := range c.splitSpans(page.Text) {
			chunks = append(chunks, domain.Chunk{
				ID:     generateChunkID(doc.ID, page.Number, span.start),
				DocID:  doc.ID,
				Source: doc.Source,
				Page:   page.Number,
				Offset: span.start,
				Text:   page.Text[span.start:span.end],
			})
		}
	}

	return chunks, nil
}

type span struct {
	start int
	end   int
}

func (c *TextChunker) splitSpans(text string) []span {
	n := len(text)
	if n == 0 {
		return nil
	}

	var spans []span
	start := 0

	for start < n {
		if n-start <= c.maxSize {
			spans = append(spans, span{start, n})
			break
		}

		end := c.breakPoint(text, start, start+c.maxSize)
		spans = append(spans, span{start, end})

		next := end - c.overlap
		for next > 0 && next < n && !utf8.RuneStart(text[next]) {
			next++
		}
		if next <= start {
			next = end
		}
		start = next
	}

	return spans
}

// breakPoint picks the split position inside text[start:limit], preferring
// a paragraph break, then a sentence end, then a newline, then a space.
// Boundaries in the first half of the window are ignored so chunks do not
// degenerate. Falls back to a hard cut at a rune boundary.
func (c *TextChunker) breakPoint(text string, start, limit int) int {
	window := text[start:limit]
	min := c.maxSize / 2

	if idx := strings.LastIndex(window, "\n\n"); idx >= min {
		return start + idx + 2
	}
	if idx := lastSentenceEnd(window); idx >= min {
		return start + idx
	}
	if idx := strings.LastIndexByte(window, '\n'); idx >= min {
		return start + idx + 1
	}
	if idx := strings.LastIndexByte(window, ' '); idx >= min {
		return start + idx + 1
	}

	end := limit
	for end > start && !utf8.RuneStart(text[end]) {
		end--
	}
	if end == start {
		end = limit
	}
	return end
}

// lastSentenceEnd returns the position just past the last sentence-ending
// punctuation followed by whitespace, or -1 if there is none.
func lastSentenceEnd(s string) int {
	for i := len(s) - 1; i > 0; i-- {
		if s[i] != ' ' && s[i] != '\n' {
			continue
		}
		switch s[i-1] {
		case '.', '!', '?':
			return i + 1
		}
	}
	return -1
}

func generateChunkID(docID string, page, offset int) string {
	data := fmt.Sprintf("%s:%d:%d", docID, page, offset)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:8])
}
