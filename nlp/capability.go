package nlp

import (
	"context"
	"errors"
)

// EntityRecognizer returns labeled spans in extraction order.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]EntitySpan, error)
}

// SentimentScorer classifies a bounded text window.
type SentimentScorer interface {
	Score(ctx context.Context, text string) (Sentiment, error)
}

// QuestionAnswerer extracts an answer span for question from passage.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question, passage string) (Answer, error)
}

// Provider bundles the model capabilities. Build it once and share it.
type Provider struct {
	Entities  EntityRecognizer
	Sentiment SentimentScorer
	QA        QuestionAnswerer
}

func (p Provider) validate() error {
	if p.Entities == nil {
		return errors.New("entity recognizer is required")
	}
	if p.Sentiment == nil {
		return errors.New("sentiment scorer is required")
	}
	if p.QA == nil {
		return errors.New("question answerer is required")
	}
	return nil
}
