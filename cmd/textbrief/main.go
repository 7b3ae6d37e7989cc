package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"textbrief/internal/app"
	"textbrief/internal/batch"
	"textbrief/internal/config"
	"textbrief/internal/domain"
	"textbrief/internal/report"
	"textbrief/internal/summarizer"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "textbrief",
		Short: "Summarize text and extract entities and tone",
		Long: `textbrief prints a report for a passage, a file, or every recognized
file in a folder: a length-adaptive summary, the named entities and a
polarity/subjectivity tone score.

Collaborators are configured through the environment (OPENAI_API_KEY,
ENTITY_BACKEND, CACHE_DB_PATH, ...). Logs go to stderr.`,
		Example: `  textbrief --text "Your legal paragraph here"
  textbrief --file path/to/sample.txt
  textbrief --file path/to/folder --max-length 80`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	cmd.Flags().String("text", "", "Text to analyse")
	cmd.Flags().String("file", "", "Path to a file or a folder of files")
	cmd.Flags().Int("max-length", summarizer.DefaultMaxLength, "Upper summary length in words")
	cmd.Flags().Int("min-length", summarizer.DefaultMinLength, "Lower summary length in words")

	cmd.MarkFlagsMutuallyExclusive("text", "file")
	cmd.MarkFlagsOneRequired("text", "file")

	return cmd
}

func runRoot(cmd *cobra.Command, _ []string) error {
	text, _ := cmd.Flags().GetString("text")
	path, _ := cmd.Flags().GetString("file")
	maxLength, _ := cmd.Flags().GetInt("max-length")
	minLength, _ := cmd.Flags().GetInt("min-length")

	if maxLength < 1 {
		return fmt.Errorf("--max-length must be at least 1, got %d", maxLength)
	}
	if minLength < 0 {
		return fmt.Errorf("--min-length must not be negative, got %d", minLength)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	log := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()

	services, err := app.Init(ctx, cfg, app.Options{MaxLength: maxLength, MinLength: minLength}, log)
	if err != nil {
		return fmt.Errorf("initialize services: %w", err)
	}
	defer func() {
		if closeErr := services.Close(); closeErr != nil {
			log.ErrorContext(ctx, "Failed to close services",
				"error", closeErr)
		}
	}()

	reports, err := services.Runner.Run(ctx, batch.InputSpec{Text: text, Path: path})
	if errors.Is(err, domain.ErrPathNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "File/folder not found:", path)

		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve input: %w", err)
	}

	var processed, failed, partial int

	for r := range reports {
		processed++
		switch {
		case r.Failed():
			failed++
		case r.Partial():
			partial++
		}

		if err = report.Render(cmd.OutOrStdout(), r); err != nil {
			return err
		}
	}

	log.InfoContext(ctx, "Batch is done",
		"processed", processed,
		"failed", failed,
		"partial", partial,
		"duration", time.Since(start),
		"interrupted", errors.Is(context.Cause(ctx), context.Canceled))

	return nil
}
