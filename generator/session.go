package generator

import (
	"context"
	"errors"
	"text/template"
	"time"
)

// Session holds the drafting and revision context of one report.
type Session struct {
	ID      string
	Input   NarrativeInput
	Draft   Draft
	History []Turn
	agent   *Agent
	tmpl    *template.Template
}

// NewSession creates a session with no draft yet.
func NewSession(id string, input NarrativeInput, tmpl *template.Template, agent *Agent) *Session {
	return &Session{
		ID:    id,
		Input: input,
		agent: agent,
		tmpl:  tmpl,
	}
}

// Propose writes the first draft.
func (s *Session) Propose(ctx context.Context) (Draft, error) {
	draft, err := s.agent.WriteReport(ctx, s.tmpl, s.Input)
	if err != nil {
		return Draft{}, err
	}
	s.Draft = draft
	s.appendTurn("", draft, "initial draft")
	return draft, nil
}

// Revise rewrites the current draft according to an editor comment.
func (s *Session) Revise(ctx context.Context, comment string) (Draft, error) {
	if s.Draft.Markdown == "" {
		return Draft{}, errors.New("session has no draft to revise")
	}
	draft, err := s.agent.Revise(ctx, s.Draft, comment, s.History)
	if err != nil {
		return Draft{}, err
	}
	s.Draft = draft
	s.appendTurn(comment, draft, "revision")
	return draft, nil
}

func (s *Session) appendTurn(comment string, draft Draft, summary string) {
	s.History = append(s.History, Turn{
		Comment:   comment,
		Draft:     draft,
		Summary:   summary,
		CreatedAt: time.Now(),
	})
}
