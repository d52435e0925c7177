package generator

import "time"

// Summary is the per-document preview fed to question generation.
type Summary struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// NarrativeInput is what the report prompt template sees.
type NarrativeInput struct {
	CategoryTitle string
	Date          string
	Material      string
}

// Draft is the model-written report in Markdown.
type Draft struct {
	Title    string `json:"title"`
	Digest   string `json:"digest"`
	Markdown string `json:"markdown"`
}

// Turn records one draft and the comment that produced it.
type Turn struct {
	Comment   string    `json:"comment"`
	Draft     Draft     `json:"draft"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
