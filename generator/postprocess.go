package generator

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyCompletion is returned when the model produced no usable report text.
var ErrEmptyCompletion = errors.New("model returned empty markdown")

var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// PostProcess validates raw model output and fills the Draft fields.
func PostProcess(raw string) (Draft, error) {
	md := strings.TrimSpace(raw)
	if md == "" {
		return Draft{}, ErrEmptyCompletion
	}

	digest := extractDigest(md)
	if digest == "" {
		digest = defaultDigest(md, 120)
	}

	return Draft{
		Title:    extractTitle(md),
		Digest:   digest,
		Markdown: md,
	}, nil
}

// ParseQuestions turns free-text model output into at most n questions: one per
// non-empty line, with bullet markers and surrounding whitespace removed. Short
// output is not an error.
func ParseQuestions(raw string, n int) []string {
	if n <= 0 {
		return nil
	}
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		q := strings.TrimSpace(strings.Trim(line, "-• \t\r"))
		if q == "" {
			continue
		}
		out = append(out, q)
		if len(out) == n {
			break
		}
	}
	return out
}

func extractTitle(md string) string {
	m := titleRe.FindStringSubmatch(md)
	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractDigest returns the first non-heading line.
func extractDigest(md string) string {
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || trimmed == "" {
			continue
		}
		return trimmed
	}
	return ""
}

func defaultDigest(md string, limit int) string {
	joined := strings.Join(strings.Fields(md), " ")
	r := []rune(joined)
	if len(r) <= limit {
		return joined
	}
	return string(r[:limit])
}
