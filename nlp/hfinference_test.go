package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInferenceServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/"+DefaultNERModel, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "EU and OpenAI", body["inputs"])
		_, _ = w.Write([]byte(`[{"entity_group":"ORG","word":"EU","score":0.99,"start":0,"end":2},
			{"entity_group":"ORG","word":"OpenAI","score":0.7,"start":7,"end":13}]`))
	})
	mux.HandleFunc("/"+DefaultSentimentModel, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[{"label":"NEGATIVE","score":0.1},{"label":"POSITIVE","score":0.9}]]`))
	})
	mux.HandleFunc("/"+DefaultQAModel, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Inputs struct {
				Question string `json:"question"`
				Context  string `json:"context"`
			} `json:"inputs"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Who?", body.Inputs.Question)
		_, _ = w.Write([]byte(`{"answer":"OpenAI","score":0.66,"start":7,"end":13}`))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestInferenceClient_Capabilities(t *testing.T) {
	srv := newInferenceServer(t)
	c := NewInferenceClient(InferenceConfig{BaseURL: srv.URL + "/", Token: "tok"}, srv.Client())
	ctx := context.Background()

	spans, err := c.Recognize(ctx, "EU and OpenAI")
	require.NoError(t, err)
	assert.Equal(t, []EntitySpan{
		{Text: "EU", Label: "ORG", Confidence: 0.99},
		{Text: "OpenAI", Label: "ORG", Confidence: 0.7},
	}, spans)

	s, err := c.Score(ctx, "great news")
	require.NoError(t, err)
	assert.Equal(t, Sentiment{Label: "POSITIVE", Score: 0.9}, s)

	ans, err := c.Answer(ctx, "Who?", "EU and OpenAI")
	require.NoError(t, err)
	assert.Equal(t, Answer{Text: "OpenAI", Score: 0.66}, ans)
}

func TestInferenceClient_Non200(t *testing.T) {
	srv := newInferenceServer(t)
	c := NewInferenceClient(InferenceConfig{BaseURL: srv.URL, QAModel: "broken"}, srv.Client())

	_, err := c.Answer(context.Background(), "q", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestInferenceClient_Provider(t *testing.T) {
	c := NewInferenceClient(InferenceConfig{}, nil)
	p := c.Provider()
	require.NoError(t, p.validate())
}
