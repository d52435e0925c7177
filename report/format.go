package report

import (
	"fmt"
	"strings"

	"github.com/ToroData/ai-radar-linkedin/nlp"
)

// Section groups the enriched entries found for one query.
type Section struct {
	Title   string              `json:"title"`
	Entries []nlp.EnrichedEntry `json:"entries"`
}

// FormatMaterial renders the annotated material for the report prompt and returns the
// reference URLs. It is the only place RefIDs are assigned: 1, 2, ... in section then
// entry order, matching the reference list index.
func FormatMaterial(sections []Section) (string, []string) {
	var sb strings.Builder
	var refs []string
	ref := 1
	for si := range sections {
		sec := &sections[si]
		sb.WriteString("\n### Topic: ")
		sb.WriteString(sec.Title)
		sb.WriteString("\n")
		for ei := range sec.Entries {
			e := &sec.Entries[ei]
			e.RefID = ref
			refs = append(refs, e.URL)
			writeEntry(&sb, e)
			ref++
		}
	}
	return strings.TrimSpace(sb.String()), refs
}

func writeEntry(sb *strings.Builder, e *nlp.EnrichedEntry) {
	fmt.Fprintf(sb, "\n[%d] Title: %s\n", e.RefID, e.Title)
	fmt.Fprintf(sb, "Summary: %s\n", e.Summary)
	fmt.Fprintf(sb, "Entity keys: %s\n", strings.Join(e.Entities, ", "))
	fmt.Fprintf(sb, "Central entity: %s\n", formatCentral(e.CentralEntities))
	fmt.Fprintf(sb, "Length summary: %d characters\n", e.SummaryLen)
	fmt.Fprintf(sb, "Sentiment: %s\n", e.Sentiment)
	sb.WriteString("Insights:")
	for _, in := range e.Insights {
		sb.WriteString("\n- ")
		sb.WriteString(in)
	}
	if len(e.QAQuestions) > 0 {
		sb.WriteString("\nQ&A Highlights:")
		for _, q := range e.QAQuestions {
			sb.WriteString("\n- ")
			sb.WriteString(q)
		}
	}
	sb.WriteString("\n")
}

func formatCentral(ces []nlp.CentralEntity) string {
	parts := make([]string, 0, len(ces))
	for _, ce := range ces {
		parts = append(parts, fmt.Sprintf("%s (centrality=%.2f)", ce.Entity, ce.Score))
	}
	return strings.Join(parts, ", ")
}

// BuildReferences renders the numbered reference list; index i+1 is refs[i].
func BuildReferences(refs []string) string {
	if len(refs) == 0 {
		return "## No references available."
	}
	var sb strings.Builder
	sb.WriteString("## References\n\n")
	for i, url := range refs {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, url)
	}
	return strings.TrimSpace(sb.String())
}

// ComposeMarkdown joins narrative, footer and references with blank lines.
func ComposeMarkdown(narrative, footer, references string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{narrative, footer, references} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}
