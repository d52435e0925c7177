package nlp

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// SummaryLimit is the number of body runes kept in a summary.
	SummaryLimit = 500
	// SummaryEllipsis marks a truncated summary.
	SummaryEllipsis = "..."
	// SentimentWindow is the number of full-text runes sent to the sentiment scorer.
	SentimentWindow = 512
)

// Enricher turns raw documents into enriched entries using a shared Provider.
type Enricher struct {
	provider    Provider
	questions   []string
	parallelism int
	logger      *zap.Logger
}

// EnricherOption customises an Enricher.
type EnricherOption func(*Enricher)

// WithQuestions replaces DefaultQuestions.
func WithQuestions(qs []string) EnricherOption {
	return func(e *Enricher) { e.questions = append([]string(nil), qs...) }
}

// WithParallelism bounds how many documents EnrichAll processes at once.
func WithParallelism(n int) EnricherOption {
	return func(e *Enricher) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) EnricherOption {
	return func(e *Enricher) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEnricher validates p and applies opts. Parallelism defaults to 1.
func NewEnricher(p Provider, opts ...EnricherOption) (*Enricher, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	e := &Enricher{
		provider:    p,
		questions:   DefaultQuestions,
		parallelism: 1,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Enrich computes one EnrichedEntry. Entity extraction, sentiment and QA run
// concurrently; the first capability error aborts the document.
func (e *Enricher) Enrich(ctx context.Context, doc RawDocument) (EnrichedEntry, error) {
	full := doc.FullText()

	var (
		spans     []EntitySpan
		sentiment Sentiment
		insights  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		spans, err = e.provider.Entities.Recognize(gctx, full)
		if err != nil {
			return fmt.Errorf("recognize entities: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sentiment, err = e.provider.Sentiment.Score(gctx, truncateRunes(full, SentimentWindow))
		if err != nil {
			return fmt.Errorf("score sentiment: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		insights, err = ExtractAnswers(gctx, e.provider.QA, e.questions, full)
		return err
	})
	if err := g.Wait(); err != nil {
		return EnrichedEntry{}, fmt.Errorf("enrich %q: %w", doc.URL, err)
	}

	// The ranking is computed from the raw spans; the display set is filtered
	// independently and must not feed the graph.
	central := RankEntities(BuildGraph(spans))
	summary := Summarize(doc.Body)

	e.logger.Debug("document enriched",
		zap.String("url", doc.URL),
		zap.Int("spans", len(spans)),
		zap.Int("insights", len(insights)),
	)

	return EnrichedEntry{
		Title:           doc.Title,
		Summary:         summary,
		Entities:        SignificantEntities(spans),
		Sentiment:       sentiment,
		Insights:        insights,
		CentralEntities: central,
		SummaryLen:      len([]rune(summary)),
		URL:             doc.URL,
	}, nil
}

// EnrichAll enriches docs concurrently and returns entries in input order.
// RefID is left unset.
func (e *Enricher) EnrichAll(ctx context.Context, docs []RawDocument) ([]EnrichedEntry, error) {
	out := make([]EnrichedEntry, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			entry, err := e.Enrich(gctx, doc)
			if err != nil {
				return err
			}
			out[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summarize keeps the first SummaryLimit runes of body and appends SummaryEllipsis
// when anything was cut.
func Summarize(body string) string {
	r := []rune(body)
	if len(r) <= SummaryLimit {
		return body
	}
	return string(r[:SummaryLimit]) + SummaryEllipsis
}

// SignificantEntities returns the distinct texts of spans above SignificanceThreshold,
// sorted.
func SignificantEntities(spans []EntitySpan) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range spans {
		if !significant(s) {
			continue
		}
		if _, ok := seen[s.Text]; ok {
			continue
		}
		seen[s.Text] = struct{}{}
		out = append(out, s.Text)
	}
	sort.Strings(out)
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
