package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"text/template"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ToroData/ai-radar-linkedin/generator"
	"github.com/ToroData/ai-radar-linkedin/nlp"
	"github.com/ToroData/ai-radar-linkedin/publisher"
	"github.com/ToroData/ai-radar-linkedin/store"
)

// Searcher returns raw documents for a query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]nlp.RawDocument, error)
}

// Enricher enriches a batch of documents, preserving order.
type Enricher interface {
	EnrichAll(ctx context.Context, docs []nlp.RawDocument) ([]nlp.EnrichedEntry, error)
}

// Uploader stores a block sequence as a titled page and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, title string, blocks []publisher.Block) (string, error)
}

// Options tunes a Pipeline. Zero values fall back to defaults.
type Options struct {
	MaxResults          int
	QuestionsPerSection int
	PreviewChars        int
	// Templates maps topic name to its report prompt.
	Templates map[string]*template.Template
	Footer    string
	Now       func() time.Time
}

const (
	defaultMaxResults   = 3
	defaultQuestions    = 4
	defaultPreviewChars = 300
)

// Pipeline wires the collaborators of one report run. Uploader and Archive are optional.
type Pipeline struct {
	Search   Searcher
	Enricher Enricher
	Agent    *generator.Agent
	Uploader Uploader
	Archive  store.Store
	Logger   *zap.Logger
	opts     Options
}

// New validates the mandatory collaborators.
func New(s Searcher, e Enricher, agent *generator.Agent, opts Options) (*Pipeline, error) {
	if s == nil || e == nil || agent == nil {
		return nil, errors.New("search, enricher and agent are required")
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}
	if opts.QuestionsPerSection <= 0 {
		opts.QuestionsPerSection = defaultQuestions
	}
	if opts.PreviewChars <= 0 {
		opts.PreviewChars = defaultPreviewChars
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{Search: s, Enricher: e, Agent: agent, Logger: zap.NewNop(), opts: opts}, nil
}

// ErrAlreadyPublished is returned by Publish for a report that already has a page.
var ErrAlreadyPublished = errors.New("report already published")

// Result is a drafted (and possibly published) report. Once shared, read it
// through Snapshot; Revise and Publish serialize on its lock.
type Result struct {
	ID         string
	Topic      Topic
	Title      string
	Date       string
	Sections   []Section
	References []string
	Session    *generator.Session
	Markdown   string
	Blocks     []publisher.Block
	PageURL    string

	mu sync.Mutex
}

// Snapshot is a consistent copy of the mutable parts of a Result.
type Snapshot struct {
	ID         string
	Topic      string
	Title      string
	Narrative  string
	Markdown   string
	References []string
	PageURL    string
	Revisions  int
	History    []generator.Turn
}

// Narrative is the current model-written part of the report.
func (r *Result) Narrative() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.narrative()
}

func (r *Result) narrative() string {
	return r.Session.Draft.Markdown
}

// Snapshot copies the result under its lock.
func (r *Result) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		ID:         r.ID,
		Topic:      r.Topic.Name,
		Title:      r.Title,
		Narrative:  r.narrative(),
		Markdown:   r.Markdown,
		References: append([]string(nil), r.References...),
		PageURL:    r.PageURL,
		Revisions:  len(r.Session.History) - 1,
		History:    append([]generator.Turn(nil), r.Session.History...),
	}
}

// Run drafts a report for topicName and, unless dryRun is set, publishes it. Any
// collaborator failure aborts the run. A failed upload still returns the
// archived draft alongside the error so it can be published later.
func (p *Pipeline) Run(ctx context.Context, topicName string, dryRun bool) (res *Result, err error) {
	began := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		runDuration.WithLabelValues(topicName, outcome).Observe(time.Since(began).Seconds())
	}()

	topic, err := LookupTopic(topicName)
	if err != nil {
		return nil, err
	}
	tmpl, ok := p.opts.Templates[topic.Name]
	if !ok {
		return nil, fmt.Errorf("no prompt template for topic %q", topic.Name)
	}

	sections := make([]Section, 0, len(topic.Queries))
	for _, q := range topic.Queries {
		sec, err := p.buildSection(ctx, topic.Name, q)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", q.SectionTitle, err)
		}
		sections = append(sections, sec)
	}

	material, refs := FormatMaterial(sections)
	date := p.opts.Now().Format("2006-01-02")
	res = &Result{
		ID:         uuid.NewString(),
		Topic:      topic,
		Title:      fmt.Sprintf("%s - %s", topic.Title, date),
		Date:       date,
		Sections:   sections,
		References: refs,
	}
	res.Session = generator.NewSession(res.ID, generator.NarrativeInput{
		CategoryTitle: topic.Title,
		Date:          date,
		Material:      material,
	}, tmpl, p.Agent)
	if _, err := res.Session.Propose(ctx); err != nil {
		return nil, err
	}
	p.compose(res)
	p.Logger.Info("report drafted",
		zap.String("id", res.ID),
		zap.String("topic", topic.Name),
		zap.Int("references", len(refs)),
		zap.Int("blocks", len(res.Blocks)),
	)

	if err := p.archive(ctx, res); err != nil {
		return nil, err
	}
	if dryRun {
		return res, nil
	}
	if err := p.Publish(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

func (p *Pipeline) buildSection(ctx context.Context, topic string, q Query) (Section, error) {
	p.Logger.Info("searching", zap.String("topic", topic), zap.String("section", q.SectionTitle))
	docs, err := p.Search.Search(ctx, q.Query, p.opts.MaxResults)
	if err != nil {
		return Section{}, err
	}

	previews := make([]generator.Summary, 0, len(docs))
	for _, d := range docs {
		previews = append(previews, generator.Summary{Title: d.Title, Summary: firstRunes(d.Body, p.opts.PreviewChars)})
	}
	questions, err := p.Agent.GenerateQuestions(ctx, previews, p.opts.QuestionsPerSection)
	if err != nil {
		return Section{}, err
	}
	questionsGenerated.WithLabelValues(topic).Add(float64(len(questions)))

	entries, err := p.Enricher.EnrichAll(ctx, docs)
	if err != nil {
		return Section{}, err
	}
	documentsEnriched.WithLabelValues(topic).Add(float64(len(entries)))

	for i := range entries {
		entries[i].QAQuestions = append([]string(nil), questions...)
	}
	return Section{Title: q.SectionTitle, Entries: entries}, nil
}

// compose rebuilds the final markdown and blocks from the current narrative.
func (p *Pipeline) compose(res *Result) {
	res.Markdown = ComposeMarkdown(res.narrative(), p.opts.Footer, BuildReferences(res.References))
	res.Blocks = publisher.ConvertBlocks(res.Markdown)
}

// Revise applies an editor comment to the narrative and rebuilds the report.
func (p *Pipeline) Revise(ctx context.Context, res *Result, comment string) error {
	res.mu.Lock()
	defer res.mu.Unlock()
	if _, err := res.Session.Revise(ctx, comment); err != nil {
		return err
	}
	p.compose(res)
	return p.archive(ctx, res)
}

// Publish uploads the report blocks and records the page URL. The result stays
// locked for the whole upload, so concurrent callers see ErrAlreadyPublished
// instead of uploading a second page.
func (p *Pipeline) Publish(ctx context.Context, res *Result) error {
	if p.Uploader == nil {
		return errors.New("no uploader configured")
	}
	res.mu.Lock()
	defer res.mu.Unlock()
	if res.PageURL != "" {
		return ErrAlreadyPublished
	}
	url, err := p.Uploader.Upload(ctx, res.Title, res.Blocks)
	if err != nil {
		return fmt.Errorf("upload report: %w", err)
	}
	blocksUploaded.Add(float64(len(res.Blocks)))
	res.PageURL = url
	p.Logger.Info("report published", zap.String("id", res.ID), zap.String("url", url))
	return p.archive(ctx, res)
}

func (p *Pipeline) archive(ctx context.Context, res *Result) error {
	if p.Archive == nil {
		return nil
	}
	var entries []nlp.EnrichedEntry
	for _, s := range res.Sections {
		entries = append(entries, s.Entries...)
	}
	rec := &store.Report{
		ID:         res.ID,
		Topic:      res.Topic.Name,
		Title:      res.Title,
		Narrative:  res.narrative(),
		Markdown:   res.Markdown,
		References: res.References,
		Entries:    entries,
		PageURL:    res.PageURL,
		Revisions:  len(res.Session.History) - 1,
	}
	if err := p.Archive.SaveReport(ctx, rec); err != nil {
		return fmt.Errorf("archive report: %w", err)
	}
	return nil
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
