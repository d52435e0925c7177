// Package config loads the YAML configuration for report runs and the review server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ToroData/ai-radar-linkedin/nlp"
	"github.com/ToroData/ai-radar-linkedin/publisher"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool                `yaml:"debug"`
	LLM       LLMConfig           `yaml:"llm"`
	Search    SearchConfig        `yaml:"search"`
	Inference nlp.InferenceConfig `yaml:"inference"`
	Notion    publisher.Config    `yaml:"notion"`
	Report    ReportConfig        `yaml:"report"`
	Storage   StorageConfig       `yaml:"storage"`
	Server    ServerConfig        `yaml:"server"`
}

// LLMConfig selects the chat model. "deepseek" needs an OpenAI-compatible base_url.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
}

// SearchConfig holds Tavily settings.
type SearchConfig struct {
	APIKey     string `yaml:"api_key"`
	MaxResults int    `yaml:"max_results"`
}

// ReportConfig tunes a run. Empty template paths use the embedded prompts.
type ReportConfig struct {
	QuestionsPerSection int               `yaml:"questions_per_section"`
	PreviewChars        int               `yaml:"preview_chars"`
	Parallelism         int               `yaml:"parallelism"`
	Templates           map[string]string `yaml:"templates"`
	FooterPath          string            `yaml:"footer_path"`
}

// StorageConfig holds the archive database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr is host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads path, applies defaults and environment overrides. An empty path
// yields a defaults-only config so that a run can be driven purely by environment.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	ApplyDefaults(&cfg)
	overrideWithEnv(&cfg)

	if path != "" {
		configDir := filepath.Dir(path)
		cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
		cfg.Report.FooterPath = expandPath(cfg.Report.FooterPath, configDir)
		for name, p := range cfg.Report.Templates {
			cfg.Report.Templates[name] = expandPath(p, configDir)
		}
	}
	return &cfg, nil
}

// overrideWithEnv lets secrets live outside the file.
func overrideWithEnv(cfg *Config) {
	for env, dst := range map[string]*string{
		"OPENAI_API_KEY":     &cfg.LLM.APIKey,
		"TAVILY_API_KEY":     &cfg.Search.APIKey,
		"NOTION_API_KEY":     &cfg.Notion.APIKey,
		"NOTION_DATABASE_ID": &cfg.Notion.DatabaseID,
		"HF_API_TOKEN":       &cfg.Inference.Token,
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
}

// Validate checks the settings every run needs. Notion credentials are only
// required to publish, see ValidatePublish.
func (c *Config) Validate() error {
	var errs []error
	switch c.LLM.Provider {
	case "openai", "mock":
	case "deepseek":
		if c.LLM.BaseURL == "" {
			errs = append(errs, errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)"))
		}
	default:
		errs = append(errs, fmt.Errorf("llm provider %s not supported", c.LLM.Provider))
	}
	if c.LLM.Provider != "mock" && c.LLM.APIKey == "" {
		errs = append(errs, errors.New("llm api key missing; set llm.api_key or OPENAI_API_KEY"))
	}
	if c.Search.APIKey == "" {
		errs = append(errs, errors.New("search api key missing; set search.api_key or TAVILY_API_KEY"))
	}
	return errors.Join(errs...)
}

// ValidatePublish checks the Notion settings.
func (c *Config) ValidatePublish() error {
	if c.Notion.APIKey == "" || c.Notion.DatabaseID == "" {
		return errors.New("notion api_key and database_id are required to publish (NOTION_API_KEY, NOTION_DATABASE_ID)")
	}
	return nil
}

// NewLogger returns a development logger in debug mode, otherwise a production one.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// expandPath resolves "./" paths against configDir. Other paths are kept as-is.
func expandPath(path, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	return path
}
