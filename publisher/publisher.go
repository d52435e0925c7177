// Package publisher converts report markdown into page blocks and uploads them to a
// Notion database.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIBase = "https://api.notion.com/v1"
	notionVersion  = "2022-06-28"

	// maxChildren is the block limit per create/append request.
	maxChildren = 100
	// chunkLimit bounds one rich_text segment; the API rejects segments over 2000.
	chunkLimit = 1800
	// DefaultTitleProperty is the title column of the report database.
	DefaultTitleProperty = "Doc name"
)

// Config holds the Notion integration settings.
type Config struct {
	APIKey        string `yaml:"api_key"`
	DatabaseID    string `yaml:"database_id"`
	TitleProperty string `yaml:"title_property"`
	BaseURL       string `yaml:"base_url"`
}

type richText struct {
	Type string `json:"type"`
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

type textBody struct {
	RichText []richText `json:"rich_text"`
}

// notionBlock is the wire shape of a block; exactly one payload field is set.
type notionBlock struct {
	Object           string    `json:"object"`
	Type             string    `json:"type"`
	Paragraph        *textBody `json:"paragraph,omitempty"`
	Heading1         *textBody `json:"heading_1,omitempty"`
	Heading2         *textBody `json:"heading_2,omitempty"`
	BulletedListItem *textBody `json:"bulleted_list_item,omitempty"`
}

type createPagePayload struct {
	Parent     map[string]string `json:"parent"`
	Properties map[string]any    `json:"properties"`
	Children   []notionBlock     `json:"children"`
}

type appendPayload struct {
	Children []notionBlock `json:"children"`
}

type pageResp struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Publisher uploads block sequences as new database pages.
type Publisher struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// New validates cfg; client and logger may be nil.
func New(cfg Config, client *http.Client, logger *zap.Logger) (*Publisher, error) {
	if cfg.APIKey == "" || cfg.DatabaseID == "" {
		return nil, errors.New("notion config must include api_key and database_id")
	}
	if cfg.TitleProperty == "" {
		cfg.TitleProperty = DefaultTitleProperty
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAPIBase
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{cfg: cfg, client: client, logger: logger}, nil
}

// Upload creates a page titled title holding blocks and returns its URL. Blocks past
// the first request's limit are appended in batches, preserving order.
func (p *Publisher) Upload(ctx context.Context, title string, blocks []Block) (string, error) {
	children := make([]notionBlock, 0, len(blocks))
	for _, b := range blocks {
		children = append(children, toNotion(b))
	}
	first := children
	if len(first) > maxChildren {
		first = children[:maxChildren]
	}

	payload := createPagePayload{
		Parent: map[string]string{"database_id": p.cfg.DatabaseID},
		Properties: map[string]any{
			p.cfg.TitleProperty: map[string]any{
				"title": []map[string]any{{"text": map[string]string{"content": title}}},
			},
		},
		Children: first,
	}
	var page pageResp
	if err := p.do(ctx, http.MethodPost, "/pages", payload, &page); err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	p.logger.Info("notion page created", zap.String("id", page.ID), zap.Int("blocks", len(first)))

	for start := len(first); start < len(children); start += maxChildren {
		end := start + maxChildren
		if end > len(children) {
			end = len(children)
		}
		var ignored pageResp
		if err := p.do(ctx, http.MethodPatch, "/blocks/"+page.ID+"/children", appendPayload{Children: children[start:end]}, &ignored); err != nil {
			return "", fmt.Errorf("append blocks %d-%d: %w", start, end, err)
		}
		p.logger.Debug("notion blocks appended", zap.Int("from", start), zap.Int("to", end))
	}
	return page.URL, nil
}

// PublishMarkdownFile uploads an already rendered report from disk.
func (p *Publisher) PublishMarkdownFile(ctx context.Context, path, title string) (string, error) {
	if path == "" || title == "" {
		return "", errors.New("markdown path and title are required")
	}
	md, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return p.Upload(ctx, title, ConvertBlocks(string(md)))
}

func (p *Publisher) do(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, p.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr pageResp
		_ = json.Unmarshal(data, &apiErr)
		return fmt.Errorf("notion %d: %s %s", resp.StatusCode, apiErr.Code, apiErr.Message)
	}
	return json.Unmarshal(data, out)
}

func toNotion(b Block) notionBlock {
	body := &textBody{RichText: splitRichText(b.Text, chunkLimit)}
	nb := notionBlock{Object: "block"}
	switch {
	case b.Kind == Heading && b.Level == 1:
		nb.Type, nb.Heading1 = "heading_1", body
	case b.Kind == Heading:
		nb.Type, nb.Heading2 = "heading_2", body
	case b.Kind == BulletItem:
		nb.Type, nb.BulletedListItem = "bulleted_list_item", body
	default:
		nb.Type, nb.Paragraph = "paragraph", body
	}
	return nb
}

// splitRichText cuts text into segments of at most limit runes.
func splitRichText(text string, limit int) []richText {
	r := []rune(text)
	var out []richText
	for len(r) > limit {
		out = append(out, newRichText(string(r[:limit])))
		r = r[limit:]
	}
	return append(out, newRichText(string(r)))
}

func newRichText(s string) richText {
	rt := richText{Type: "text"}
	rt.Text.Content = s
	return rt
}
