package generator

import (
	"context"
	"regexp"
	"strings"
)

var citationRe = regexp.MustCompile(`(?m)^\[(\d+)\] Title: (.+)$`)

// MockLLM is an offline stand-in that never calls a model.
// Question prompts get canned bullet questions; report prompts get one paragraph per
// cited source in the material.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if strings.Contains(prompt.User, "in-depth and specific questions") {
		return "- Which policy decision does the coverage focus on?\n" +
			"- Which governments or companies drive it?\n" +
			"- What regulatory consequence follows?\n" +
			"- Which funding commitments are mentioned?\n", nil
	}
	if strings.HasPrefix(prompt.User, "Current report:") {
		md := strings.TrimPrefix(prompt.User, "Current report:\n")
		if i := strings.Index(md, "\n\nReviewer feedback:"); i >= 0 {
			md = md[:i]
		}
		return md, nil
	}

	var sb strings.Builder
	sb.WriteString("# Automated briefing\n\n")
	sb.WriteString("This draft was produced without a language model.\n\n")
	sb.WriteString("## Sources\n\n")
	for _, m := range citationRe.FindAllStringSubmatch(prompt.User, -1) {
		sb.WriteString(m[2])
		sb.WriteString(" [")
		sb.WriteString(m[1])
		sb.WriteString("]\n\n")
	}
	return sb.String(), nil
}
