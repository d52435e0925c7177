package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "TAVILY_API_KEY", "NOTION_API_KEY", "NOTION_DATABASE_ID", "HF_API_TOKEN"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
llm:
  provider: openai
  model: gpt-4o
  api_key: sk-file
search:
  api_key: tvly-file
  max_results: 5
notion:
  database_id: db-1
report:
  templates:
    research: ./prompts/research.md.tmpl
storage:
  database_path: ./data/reports.db
server:
  port: 9000
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, "db-1", cfg.Notion.DatabaseID)
	assert.Equal(t, "Doc name", cfg.Notion.TitleProperty)
	assert.Equal(t, filepath.Join(dir, "data", "reports.db"), cfg.Storage.DatabasePath)
	assert.Equal(t, filepath.Join(dir, "prompts", "research.md.tmpl"), cfg.Report.Templates["research"])
	assert.Equal(t, "localhost:9000", cfg.Server.Addr())
	assert.False(t, cfg.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("NOTION_API_KEY", "secret_env")
	t.Setenv("HF_API_TOKEN", "hf_env")
	path := writeConfig(t, "llm:\n  api_key: sk-file\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.LLM.APIKey)
	assert.Equal(t, "secret_env", cfg.Notion.APIKey)
	assert.Equal(t, "hf_env", cfg.Inference.Token)
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TAVILY_API_KEY", "tvly-env")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "tvly-env", cfg.Search.APIKey)
	assert.Equal(t, "data/reports.db", cfg.Storage.DatabasePath)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "llm: [unclosed"))
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.Search.MaxResults)
	assert.Equal(t, 4, cfg.Report.QuestionsPerSection)
	assert.Equal(t, 300, cfg.Report.PreviewChars)
	assert.NotNil(t, cfg.Report.Templates)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		ApplyDefaults(c)
		c.LLM.APIKey = "sk"
		c.Search.APIKey = "tvly"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"missing llm key", func(c *Config) { c.LLM.APIKey = "" }, "OPENAI_API_KEY"},
		{"missing search key", func(c *Config) { c.Search.APIKey = "" }, "TAVILY_API_KEY"},
		{"mock needs no llm key", func(c *Config) { c.LLM.Provider = "mock"; c.LLM.APIKey = "" }, ""},
		{"deepseek without base url", func(c *Config) { c.LLM.Provider = "deepseek" }, "base_url"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "bard" }, "not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidatePublish(t *testing.T) {
	c := &Config{}
	assert.Error(t, c.ValidatePublish())
	c.Notion.APIKey = "secret"
	c.Notion.DatabaseID = "db"
	assert.NoError(t, c.ValidatePublish())
}
