package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"NewsWriter/internal/app"
	"NewsWriter/internal/config"
	"NewsWriter/internal/domain"
	"NewsWriter/internal/logging"
)

type options struct {
	configPath string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "newswriter",
		Short:         "Generate, illustrate and publish news articles",
		Long:          `newswriter picks trending topics per category, drafts articles with a text generator, attaches stock photos and stores the result in Postgres and a JSON backup tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app.Application) error {
				return a.Run(ctx, "")
			})
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (overrides NEWSWRITER_CONFIG)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newRunCommand(opts),
		newCronCommand(opts),
		newGenerateCommand(opts),
	)
	return root
}

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one batch over all categories and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app.Application) error {
				return a.Run(ctx, app.ModeRun)
			})
		},
	}
}

func newCronCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cron",
		Short: "Run a batch now and then on the configured schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app.Application) error {
				return a.Run(ctx, app.ModeCron)
			})
		},
	}
}

func newGenerateCommand(opts *options) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a single article for one category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app.Application) error {
				summary := a.GenerateCategory(ctx, cat)
				if summary.Succeeded() == 0 {
					return fmt.Errorf("generate %s: %s", cat, summary.Results[0].Error)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category to write for")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func withApp(ctx context.Context, opts *options, fn func(context.Context, *app.Application) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.configPath != "" {
		if err := os.Setenv("NEWSWRITER_CONFIG", opts.configPath); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}

	cfg := config.Load()
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	logger := logging.New(cfg.Logging.Level)
	slog.SetDefault(logger)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("close application", "error", err)
		}
	}()

	if err := fn(ctx, application); err != nil {
		logger.Error("application stopped", "error", err)
		return err
	}
	return nil
}
