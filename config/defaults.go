package config

import "github.com/ToroData/ai-radar-linkedin/publisher"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 3
	}
	if cfg.Report.QuestionsPerSection == 0 {
		cfg.Report.QuestionsPerSection = 4
	}
	if cfg.Report.PreviewChars == 0 {
		cfg.Report.PreviewChars = 300
	}
	if cfg.Report.Parallelism == 0 {
		cfg.Report.Parallelism = 4
	}
	if cfg.Report.Templates == nil {
		cfg.Report.Templates = map[string]string{}
	}
	if cfg.Notion.TitleProperty == "" {
		cfg.Notion.TitleProperty = publisher.DefaultTitleProperty
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "data/reports.db"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
}
