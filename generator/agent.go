package generator

import (
	"context"
	"errors"
	"fmt"
	"text/template"
)

// Agent drives the model: analytical questions, report drafts and revisions.
type Agent struct {
	llm LLMClient
}

// NewAgent wraps llm, which is required.
func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// GenerateQuestions makes a single model call for the whole batch and returns at most
// n questions. Fewer than n is a valid result.
func (a *Agent) GenerateQuestions(ctx context.Context, summaries []Summary, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := a.llm.Complete(ctx, BuildQuestionPrompt(summaries, n))
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	return ParseQuestions(raw, n), nil
}

// WriteReport renders the report prompt and returns the model's narrative.
func (a *Agent) WriteReport(ctx context.Context, tmpl *template.Template, input NarrativeInput) (Draft, error) {
	prompt, err := BuildNarrativePrompt(tmpl, input)
	if err != nil {
		return Draft{}, err
	}
	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return Draft{}, fmt.Errorf("write report: %w", err)
	}
	return PostProcess(raw)
}

// Revise applies an editor comment to prev.
func (a *Agent) Revise(ctx context.Context, prev Draft, comment string, history []Turn) (Draft, error) {
	raw, err := a.llm.Complete(ctx, BuildRevisionPrompt(prev, comment, history))
	if err != nil {
		return Draft{}, fmt.Errorf("revise report: %w", err)
	}
	return PostProcess(raw)
}
