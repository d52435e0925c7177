package nlp

import (
	"context"
	"fmt"
	"strings"
)

// AnswerThreshold is the minimum QA confidence (exclusive) for an answer to be kept.
const AnswerThreshold = 0.4

// DefaultQuestions is the fixed battery asked of every document, in order.
var DefaultQuestions = []string{
	"What political decision is mentioned?",
	"Which actors are involved?",
	"What impact does this news have on AI regulation?",
}

// ExtractAnswers asks each question against passage and returns "question: answer"
// for the confident, non-empty answers only. Output follows question order.
func ExtractAnswers(ctx context.Context, qa QuestionAnswerer, questions []string, passage string) ([]string, error) {
	var out []string
	for _, q := range questions {
		ans, err := qa.Answer(ctx, q, passage)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", q, err)
		}
		text := strings.TrimSpace(ans.Text)
		if ans.Score <= AnswerThreshold || text == "" {
			continue
		}
		out = append(out, q+": "+ans.Text)
	}
	return out, nil
}
