package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotion struct {
	mu      sync.Mutex
	created []createPagePayload
	appends [][]notionBlock
}

func (f *fakeNotion) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/pages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, notionVersion, r.Header.Get("Notion-Version"))
		var p createPagePayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		f.mu.Lock()
		f.created = append(f.created, p)
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"object":"page","id":"page-1","url":"https://www.notion.so/page-1"}`))
	})
	mux.HandleFunc("/blocks/page-1/children", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		var p appendPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		f.mu.Lock()
		f.appends = append(f.appends, p.Children)
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"object":"list","results":[]}`))
	})
	return mux
}

func newTestPublisher(t *testing.T, h http.Handler) *Publisher {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := New(Config{APIKey: "secret", DatabaseID: "db-1", BaseURL: srv.URL}, srv.Client(), nil)
	require.NoError(t, err)
	return p
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(Config{APIKey: "k"}, nil, nil)
	require.Error(t, err)
}

func TestUpload_SinglePage(t *testing.T) {
	fake := &fakeNotion{}
	p := newTestPublisher(t, fake.handler(t))

	blocks := ConvertBlocks("# Report\n\nBody text\n- point\n## References\n[1] https://a")
	url, err := p.Upload(context.Background(), "AI Report - 2026-10-18", blocks)
	require.NoError(t, err)
	assert.Equal(t, "https://www.notion.so/page-1", url)

	require.Len(t, fake.created, 1)
	created := fake.created[0]
	assert.Equal(t, "db-1", created.Parent["database_id"])
	title, err := json.Marshal(created.Properties[DefaultTitleProperty])
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":[{"text":{"content":"AI Report - 2026-10-18"}}]}`, string(title))

	types := make([]string, 0, len(created.Children))
	for _, c := range created.Children {
		types = append(types, c.Type)
	}
	assert.Equal(t, []string{"heading_1", "paragraph", "bulleted_list_item", "heading_2", "paragraph"}, types)
	assert.Equal(t, "point", created.Children[2].BulletedListItem.RichText[0].Text.Content)
	assert.Empty(t, fake.appends)
}

func TestUpload_AppendsBeyondLimit(t *testing.T) {
	fake := &fakeNotion{}
	p := newTestPublisher(t, fake.handler(t))

	blocks := make([]Block, 250)
	for i := range blocks {
		blocks[i] = NewBulletItem(fmt.Sprintf("item %d", i))
	}
	_, err := p.Upload(context.Background(), "big", blocks)
	require.NoError(t, err)

	require.Len(t, fake.created, 1)
	assert.Len(t, fake.created[0].Children, 100)
	require.Len(t, fake.appends, 2)
	assert.Len(t, fake.appends[0], 100)
	assert.Len(t, fake.appends[1], 50)
	assert.Equal(t, "item 100", fake.appends[0][0].BulletedListItem.RichText[0].Text.Content)
	assert.Equal(t, "item 249", fake.appends[1][49].BulletedListItem.RichText[0].Text.Content)
}

func TestUpload_APIError(t *testing.T) {
	p := newTestPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"object":"error","status":400,"code":"validation_error","message":"bad title"}`))
	}))
	_, err := p.Upload(context.Background(), "t", []Block{NewParagraph("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation_error")
}

func TestSplitRichText(t *testing.T) {
	long := strings.Repeat("é", 4000)
	parts := splitRichText(long, chunkLimit)
	require.Len(t, parts, 3)
	assert.Len(t, []rune(parts[0].Text.Content), 1800)
	assert.Len(t, []rune(parts[2].Text.Content), 400)

	assert.Len(t, splitRichText("", chunkLimit), 1)
}

func TestPublishMarkdownFile(t *testing.T) {
	fake := &fakeNotion{}
	p := newTestPublisher(t, fake.handler(t))

	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, os.WriteFile(path, []byte("# T\n\nhello"), 0600))
	url, err := p.PublishMarkdownFile(context.Background(), path, "T")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	require.Len(t, fake.created, 1)
	assert.Len(t, fake.created[0].Children, 2)

	_, err = p.PublishMarkdownFile(context.Background(), "", "T")
	require.Error(t, err)
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("# Title\n\n- a\n- b\n")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<li>a</li>")
}
