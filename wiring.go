package main

import (
	"fmt"
	"text/template"

	"go.uber.org/zap"

	"github.com/ToroData/ai-radar-linkedin/config"
	"github.com/ToroData/ai-radar-linkedin/generator"
	"github.com/ToroData/ai-radar-linkedin/nlp"
	"github.com/ToroData/ai-radar-linkedin/publisher"
	"github.com/ToroData/ai-radar-linkedin/report"
	"github.com/ToroData/ai-radar-linkedin/search"
	"github.com/ToroData/ai-radar-linkedin/store"
)

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	pipeline *report.Pipeline
	archive  store.Store
}

func (a *app) close() {
	if a.archive != nil {
		if err := a.archive.Close(); err != nil {
			a.logger.Warn("close archive", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// setup loads config and builds the long-lived collaborators once per process.
func setup(cfgPath string, debug, mockLLM, requirePublish bool) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if mockLLM {
		cfg.LLM.Provider = "mock"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if requirePublish {
		if err := cfg.ValidatePublish(); err != nil {
			return nil, err
		}
	}

	logger, err := config.NewLogger(cfg.Debug || debug)
	if err != nil {
		return nil, err
	}

	llm, err := buildLLM(cfg.LLM)
	if err != nil {
		return nil, err
	}
	agent, err := generator.NewAgent(llm)
	if err != nil {
		return nil, err
	}

	inference := nlp.NewInferenceClient(cfg.Inference, nil)
	enricher, err := nlp.NewEnricher(inference.Provider(),
		nlp.WithParallelism(cfg.Report.Parallelism),
		nlp.WithLogger(logger.Named("nlp")),
	)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template)
	for _, name := range report.TopicNames() {
		tmpl, err := generator.LoadTemplate(name, cfg.Report.Templates[name])
		if err != nil {
			return nil, err
		}
		templates[name] = tmpl
	}
	footer, err := generator.LoadFooter(cfg.Report.FooterPath)
	if err != nil {
		return nil, err
	}

	pipeline, err := report.New(search.NewClient(cfg.Search.APIKey, nil), enricher, agent, report.Options{
		MaxResults:          cfg.Search.MaxResults,
		QuestionsPerSection: cfg.Report.QuestionsPerSection,
		PreviewChars:        cfg.Report.PreviewChars,
		Templates:           templates,
		Footer:              footer,
	})
	if err != nil {
		return nil, err
	}
	pipeline.Logger = logger.Named("report")

	if cfg.ValidatePublish() == nil {
		pub, err := newPublisher(cfg, logger)
		if err != nil {
			return nil, err
		}
		pipeline.Uploader = pub
	}

	archive, err := store.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, err
	}
	pipeline.Archive = archive

	return &app{cfg: cfg, logger: logger, pipeline: pipeline, archive: archive}, nil
}

func newPublisher(cfg *config.Config, logger *zap.Logger) (*publisher.Publisher, error) {
	return publisher.New(cfg.Notion, nil, logger.Named("notion"))
}

func buildLLM(cfg config.LLMConfig) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider:    cfg.Provider,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Temperature: cfg.Temperature,
	}
	switch cfg.Provider {
	case "mock":
		return generator.MockLLM{}, nil
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek speaks the OpenAI protocol at its own base_url.
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
