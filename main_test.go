package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ToroData/ai-radar-linkedin/config"
	"github.com/ToroData/ai-radar-linkedin/generator"
)

func TestBuildLLM(t *testing.T) {
	llm, err := buildLLM(config.LLMConfig{Provider: "mock"})
	require.NoError(t, err)
	assert.IsType(t, generator.MockLLM{}, llm)

	llm, err = buildLLM(config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini", APIKey: "sk"})
	require.NoError(t, err)
	assert.IsType(t, &generator.OpenAILLM{}, llm)

	_, err = buildLLM(config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"})
	assert.Error(t, err)

	_, err = buildLLM(config.LLMConfig{Provider: "deepseek", Model: "deepseek-chat", APIKey: "sk"})
	assert.Error(t, err)

	_, err = buildLLM(config.LLMConfig{Provider: "bard"})
	assert.Error(t, err)
}

func TestSetup_MockDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  api_key: tvly\nstorage:\n  database_path: ./reports.db\n"), 0600))
	for _, k := range []string{"OPENAI_API_KEY", "NOTION_API_KEY", "NOTION_DATABASE_ID"} {
		t.Setenv(k, "")
	}

	app, err := setup(path, false, true, false)
	require.NoError(t, err)
	defer app.close()
	assert.Nil(t, app.pipeline.Uploader)
	assert.NotNil(t, app.pipeline.Archive)

	_, err = setup(path, false, true, true)
	assert.Error(t, err, "publishing needs notion credentials")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.md")
	require.NoError(t, writeFile(path, "# R"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# R", string(data))
}
