package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ToroData/ai-radar-linkedin/config"
	"github.com/ToroData/ai-radar-linkedin/report"
	"github.com/ToroData/ai-radar-linkedin/server"
)

func main() {
	var cfgPath string
	var debug bool

	root := &cobra.Command{
		Use:          "ai-radar",
		Short:        "Search, enrich and publish weekly AI briefings",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml (env-only when empty)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(runCMD(&cfgPath, &debug), serveCMD(&cfgPath, &debug), publishCMD(&cfgPath, &debug))
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCMD(cfgPath *string, debug *bool) *cobra.Command {
	var topic, out string
	var dryRun, mockLLM bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Produce one report and publish it to Notion",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(*cfgPath, *debug, mockLLM, !dryRun)
			if err != nil {
				return err
			}
			defer app.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := app.pipeline.Run(ctx, topic, dryRun)
			if err != nil {
				app.logger.Error("report run failed", zap.String("topic", topic), zap.Error(err))
				return err
			}
			if out != "" {
				if err := writeFile(out, res.Markdown); err != nil {
					return err
				}
			}
			app.logger.Info("report done",
				zap.String("id", res.ID),
				zap.String("title", res.Title),
				zap.Int("references", len(res.References)),
				zap.String("url", res.PageURL),
			)
			if dryRun {
				fmt.Println(res.Markdown)
				return nil
			}
			fmt.Println(res.PageURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "general", fmt.Sprintf("report topic %v", report.TopicNames()))
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "draft the report without uploading")
	cmd.Flags().BoolVar(&mockLLM, "mock-llm", false, "use the offline mock model")
	cmd.Flags().StringVar(&out, "out", "", "also write the final markdown to this file")
	return cmd
}

func serveCMD(cfgPath *string, debug *bool) *cobra.Command {
	var addr string
	var mockLLM bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the review HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(*cfgPath, *debug, mockLLM, false)
			if err != nil {
				return err
			}
			defer app.close()

			srv, err := server.New(app.pipeline, app.logger)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = app.cfg.Server.Addr()
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start(addr) }()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-sig:
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.host/port)")
	cmd.Flags().BoolVar(&mockLLM, "mock-llm", false, "use the offline mock model")
	return cmd
}

func publishCMD(cfgPath *string, debug *bool) *cobra.Command {
	var mdPath, title string
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload an existing markdown report to Notion",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mdPath == "" || title == "" {
				return fmt.Errorf("--md and --title are required")
			}
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(cfg.Debug || *debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			pub, err := newPublisher(cfg, logger)
			if err != nil {
				return err
			}
			logger.Info("publishing", zap.String("title", title), zap.String("md", mdPath))
			url, err := pub.PublishMarkdownFile(cmd.Context(), mdPath, title)
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	}
	cmd.Flags().StringVar(&mdPath, "md", "", "path to markdown file")
	cmd.Flags().StringVar(&title, "title", "", "page title")
	return cmd
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
