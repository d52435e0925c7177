package nlp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAnswers_FiltersAndKeepsOrder(t *testing.T) {
	qa := &fakeQA{answers: map[string]Answer{
		"q1": {Text: "the AI Act", Score: 0.9},
		"q2": {Text: "low", Score: 0.4},
		"q3": {Text: "   ", Score: 0.99},
		"q4": {Text: "Brussels", Score: 0.41},
	}}
	got, err := ExtractAnswers(context.Background(), qa, []string{"q1", "q2", "q3", "q4", "q5"}, "ctx")
	require.NoError(t, err)

	assert.Equal(t, []string{"q1: the AI Act", "q4: Brussels"}, got)
	assert.Equal(t, []string{"q1", "q2", "q3", "q4", "q5"}, qa.asked)
}

func TestExtractAnswers_NoQualifyingAnswers(t *testing.T) {
	got, err := ExtractAnswers(context.Background(), &fakeQA{}, DefaultQuestions, "ctx")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractAnswers_PropagatesError(t *testing.T) {
	boom := errors.New("model down")
	_, err := ExtractAnswers(context.Background(), &fakeQA{err: boom}, DefaultQuestions, "ctx")
	require.ErrorIs(t, err, boom)
}

func TestDefaultQuestions(t *testing.T) {
	assert.Len(t, DefaultQuestions, 3)
}
