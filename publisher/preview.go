package publisher

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderHTML renders report markdown for the review preview.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
