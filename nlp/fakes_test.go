package nlp

import (
	"context"
	"sync"
)

type fakeRecognizer struct {
	spans []EntitySpan
	err   error
}

func (f fakeRecognizer) Recognize(context.Context, string) ([]EntitySpan, error) {
	return f.spans, f.err
}

type fakeScorer struct {
	mu    sync.Mutex
	seen  []string
	label string
	err   error
}

func (f *fakeScorer) Score(_ context.Context, text string) (Sentiment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, text)
	if f.err != nil {
		return Sentiment{}, f.err
	}
	return Sentiment{Label: f.label, Score: 0.91}, nil
}

// fakeQA answers by question; unknown questions get an empty, zero-score answer.
type fakeQA struct {
	mu      sync.Mutex
	answers map[string]Answer
	asked   []string
	err     error
}

func (f *fakeQA) Answer(_ context.Context, question, _ string) (Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, question)
	if f.err != nil {
		return Answer{}, f.err
	}
	return f.answers[question], nil
}
