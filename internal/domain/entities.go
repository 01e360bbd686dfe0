package domain

import "time"

// Document is a loaded source document, decomposed into pages. It exists
// only for the duration of one ingestion call.
type Document struct {
	ID     string
	Path   string
	Source string
	Pages  []Page
}

// Page is one logical page of extracted text. Plain-text documents have a
// single page numbered 1.
type Page struct {
	Number int
	Text   string
}

// Chunk is a bounded span of document text, the unit of embedding and
// retrieval. Chunks are immutable once created.
type Chunk struct {
	ID     string
	DocID  string
	Source string
	Page   int
	Offset int
	Text   string
}

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// IngestSummary reports the outcome of ingesting one document.
type IngestSummary struct {
	Source string
	Pages  int
	Chunks int
}

// IndexStats describes the persisted index.
type IndexStats struct {
	Records   int
	Dimension int
	Path      string
}

// Report is a formatted ESG assessment for one company.
type Report struct {
	Company         string        `json:"company"`
	GeneratedAt     time.Time     `json:"report_generated_on"`
	Summary         string        `json:"summary"`
	Details         ReportDetails `json:"details"`
	Recommendations []string      `json:"recommendations"`
}

type ReportDetails struct {
	CO2EmissionKg  float64 `json:"co2_emission_kg"`
	RenewableShare float64 `json:"renewable_energy_pct"`
	ESGScore       float64 `json:"esg_score"`
	Status         string  `json:"sustainability_status"`
	Category       string  `json:"environmental_category"`
}
