package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultInferenceURL = "https://router.huggingface.co/hf-inference/models"

// Default hosted models, the same checkpoints the report was designed around.
const (
	DefaultNERModel       = "dslim/bert-base-NER"
	DefaultSentimentModel = "distilbert/distilbert-base-uncased-finetuned-sst-2-english"
	DefaultQAModel        = "deepset/roberta-base-squad2"
)

// Doer is the subset of *http.Client used by the inference client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// InferenceConfig configures a hosted-inference client.
type InferenceConfig struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	NERModel       string `yaml:"ner_model"`
	SentimentModel string `yaml:"sentiment_model"`
	QAModel        string `yaml:"qa_model"`
}

// InferenceClient calls hosted transformer pipelines over HTTP. It implements
// EntityRecognizer, SentimentScorer and QuestionAnswerer.
type InferenceClient struct {
	cfg  InferenceConfig
	doer Doer
}

// NewInferenceClient fills model defaults; doer may be nil.
func NewInferenceClient(cfg InferenceConfig, doer Doer) *InferenceClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultInferenceURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.NERModel == "" {
		cfg.NERModel = DefaultNERModel
	}
	if cfg.SentimentModel == "" {
		cfg.SentimentModel = DefaultSentimentModel
	}
	if cfg.QAModel == "" {
		cfg.QAModel = DefaultQAModel
	}
	if doer == nil {
		doer = &http.Client{Timeout: 60 * time.Second}
	}
	return &InferenceClient{cfg: cfg, doer: doer}
}

// Provider exposes the client as all three capabilities.
func (c *InferenceClient) Provider() Provider {
	return Provider{Entities: c, Sentiment: c, QA: c}
}

type nerSpan struct {
	EntityGroup string  `json:"entity_group"`
	Word        string  `json:"word"`
	Score       float64 `json:"score"`
}

// Recognize runs token classification with simple aggregation.
func (c *InferenceClient) Recognize(ctx context.Context, text string) ([]EntitySpan, error) {
	payload := map[string]any{
		"inputs":     text,
		"parameters": map[string]string{"aggregation_strategy": "simple"},
	}
	var raw []nerSpan
	if err := c.post(ctx, c.cfg.NERModel, payload, &raw); err != nil {
		return nil, err
	}
	spans := make([]EntitySpan, 0, len(raw))
	for _, r := range raw {
		spans = append(spans, EntitySpan{Text: r.Word, Label: r.EntityGroup, Confidence: r.Score})
	}
	return spans, nil
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Score returns the highest scoring label. The endpoint answers either a flat list
// or a list per input; both are accepted.
func (c *InferenceClient) Score(ctx context.Context, text string) (Sentiment, error) {
	var raw json.RawMessage
	if err := c.post(ctx, c.cfg.SentimentModel, map[string]any{"inputs": text}, &raw); err != nil {
		return Sentiment{}, err
	}
	var nested [][]labelScore
	var flat []labelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		flat = nested[0]
	} else if err := json.Unmarshal(raw, &flat); err != nil {
		return Sentiment{}, fmt.Errorf("decode sentiment: %w", err)
	}
	if len(flat) == 0 {
		return Sentiment{}, errors.New("sentiment: empty result")
	}
	best := flat[0]
	for _, ls := range flat[1:] {
		if ls.Score > best.Score {
			best = ls
		}
	}
	return Sentiment{Label: best.Label, Score: best.Score}, nil
}

// Answer runs extractive question answering.
func (c *InferenceClient) Answer(ctx context.Context, question, passage string) (Answer, error) {
	payload := map[string]any{
		"inputs": map[string]string{"question": question, "context": passage},
	}
	var ans Answer
	if err := c.post(ctx, c.cfg.QAModel, payload, &ans); err != nil {
		return Answer{}, err
	}
	return ans, nil
}

func (c *InferenceClient) post(ctx context.Context, model string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/"+model, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", model, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", model, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %d: %s", model, resp.StatusCode, truncateRunes(string(data), 300))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode: %w", model, err)
	}
	return nil
}
