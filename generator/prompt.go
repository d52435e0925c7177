package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message set sent to the model.
type Prompt struct {
	System  string
	User    string
	History []Message
}

// Message is an optional prior turn.
type Message struct {
	Role    string
	Content string
}

// BuildQuestionPrompt asks for n analytical questions about the whole batch of summaries.
func BuildQuestionPrompt(summaries []Summary, n int) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an analyst specializing in artificial intelligence policy and regulation.\n")
	sb.WriteString(fmt.Sprintf("Based on the following summarized news stories, generate %d in-depth and specific questions to be answered with NLP models.\n", n))
	sb.WriteString("Questions should focus on:\n\n")
	sb.WriteString("- specific policy decisions\n")
	sb.WriteString("- actors involved\n")
	sb.WriteString("- regulatory or strategic consequences\n\n")
	sb.WriteString("Do not include generic or trivial questions.\n\n")

	for i, s := range summaries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Title: %s\nSummary: %s", s.Title, s.Summary))
	}

	return Prompt{User: sb.String()}
}

// BuildRevisionPrompt asks the model to apply an editor's comment to a drafted report.
func BuildRevisionPrompt(prev Draft, comment string, history []Turn) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a senior editor. Apply the reviewer's feedback to the report with the smallest necessary changes.\n")
	sb.WriteString("- Keep the Markdown heading levels and list formatting.\n")
	sb.WriteString("- Keep every [n] citation marker attached to the same claim.\n")
	sb.WriteString("- If the feedback is invalid, return the report unchanged.\n")

	user := fmt.Sprintf("Current report:\n%s\n\nReviewer feedback: %s\nReturn the complete revised Markdown.", prev.Markdown, comment)

	var msgs []Message
	for _, t := range history {
		if t.Comment == "" {
			continue
		}
		msgs = append(msgs, Message{Role: "user", Content: t.Comment})
	}

	return Prompt{
		System:  sb.String(),
		User:    user,
		History: msgs,
	}
}
