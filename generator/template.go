package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"
)

//go:embed templates/*.md.tmpl templates/footer.md
var embeddedTemplates embed.FS

// LoadTemplate parses the report prompt at path, or the embedded default for name
// ("general", "research") when path is empty.
func LoadTemplate(name, path string) (*template.Template, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = embeddedTemplates.ReadFile("templates/" + name + ".md.tmpl")
	}
	if err != nil {
		return nil, fmt.Errorf("load prompt template %q: %w", name, err)
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %q: %w", name, err)
	}
	return tmpl, nil
}

// LoadFooter reads the static footer appended after the narrative.
func LoadFooter(path string) (string, error) {
	if path == "" {
		data, err := embeddedTemplates.ReadFile("templates/footer.md")
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load footer: %w", err)
	}
	return string(data), nil
}

// BuildNarrativePrompt renders tmpl with input.
func BuildNarrativePrompt(tmpl *template.Template, input NarrativeInput) (Prompt, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, input); err != nil {
		return Prompt{}, fmt.Errorf("render prompt: %w", err)
	}
	return Prompt{User: buf.String()}, nil
}
