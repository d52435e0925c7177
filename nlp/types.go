// Package nlp enriches raw search results with entities, sentiment, QA insights and an
// entity centrality ranking.
package nlp

import "fmt"

// RawDocument is one search result as returned by the search collaborator.
type RawDocument struct {
	Title string `json:"title"`
	Body  string `json:"content"`
	URL   string `json:"url"`
}

// FullText is the text every capability sees: title and body on separate lines.
func (d RawDocument) FullText() string {
	return d.Title + "\n" + d.Body
}

// EntitySpan is a single entity mention reported by the recognizer.
type EntitySpan struct {
	Text       string  `json:"text"`
	Label      string  `json:"label,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Sentiment is a polarity label with its confidence.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (s Sentiment) String() string {
	return fmt.Sprintf("%s (score=%.2f)", s.Label, s.Score)
}

// Answer is an extractive QA result.
type Answer struct {
	Text  string  `json:"answer"`
	Score float64 `json:"score"`
}

// CentralEntity pairs an entity with its degree centrality.
type CentralEntity struct {
	Entity string  `json:"entity"`
	Score  float64 `json:"score"`
}

// EnrichedEntry is the per-document record handed to narrative assembly.
// RefID and QAQuestions are filled after enrichment by the orchestrator.
type EnrichedEntry struct {
	Title           string          `json:"title"`
	Summary         string          `json:"summary"`
	Entities        []string        `json:"entities"`
	Sentiment       Sentiment       `json:"sentiment"`
	Insights        []string        `json:"insights"`
	CentralEntities []CentralEntity `json:"central_entities"`
	SummaryLen      int             `json:"summary_len"`
	URL             string          `json:"url"`
	RefID           int             `json:"ref_id"`
	QAQuestions     []string        `json:"qa_questions,omitempty"`
}
