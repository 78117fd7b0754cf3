package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/decisions/config"
	"github.com/spacesedan/decisions/internal/clients"
	"github.com/spacesedan/decisions/internal/logging"
	"github.com/spacesedan/decisions/internal/pipeline"
	"github.com/spacesedan/decisions/internal/posts"
	"github.com/spacesedan/decisions/internal/processing"
	"github.com/spacesedan/decisions/internal/progress"
	"github.com/spacesedan/decisions/internal/report"
	"github.com/spacesedan/decisions/internal/sentiment"
)

const (
	exitOK         = 0
	exitFatal      = 1
	exitNoComments = 2
	exitUsage      = 64
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logging.InitLogger()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	if err := config.LoadEnv(env); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Error("[Main] Failed to read env file", slog.String("error", err.Error()))
			return exitUsage
		}
		slog.Warn("[Main] No .env file found, using OS environment", slog.String("app_env", env))
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		return exitUsage
	}
	logging.SetLevel(cfg.LogLevel)

	flags := flag.NewFlagSet("decisions", flag.ContinueOnError)
	flags.StringVar(&cfg.RedditClientID, "client-id", cfg.RedditClientID, "Reddit API client id (REDDIT_CLIENT_ID)")
	flags.StringVar(&cfg.RedditClientSecret, "client-secret", cfg.RedditClientSecret, "Reddit API client secret (REDDIT_CLIENT_SECRET)")
	flags.StringVar(&cfg.SheetID, "sheet-id", cfg.SheetID, "Google Sheet to read posts from (SHEET_ID)")
	flags.StringVar(&cfg.InputFile, "input", cfg.InputFile, "local CSV to read posts from instead of the sheet (INPUT_FILE)")
	flags.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "CSV file to write (OUTPUT_FILE)")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flags.Usage()
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := progress.NewConsole(os.Stdout)

	p, err := build(cfg, console)
	if err != nil {
		slog.Error("[Main] Failed to set up pipeline", slog.String("error", err.Error()))
		console.Failed(err)
		return exitFatal
	}

	summary, err := p.Run(ctx)
	switch {
	case errors.Is(err, pipeline.ErrNoComments):
		console.Failed(err)
		return exitNoComments
	case err != nil:
		slog.Error("[Main] Run failed", slog.String("error", err.Error()))
		console.Failed(err)
		return exitFatal
	}

	console.Finished(summary.Posts, summary.Records, len(summary.PostFailures), len(summary.RecordFailures))
	return exitOK
}

func build(cfg *config.Config, console *progress.Console) (*pipeline.Pipeline, error) {
	naiveBayes, err := sentiment.NewNaiveBayesModel()
	if err != nil {
		return nil, fmt.Errorf("train naive bayes model: %w", err)
	}

	reddit := clients.NewRedditClient(clients.RedditConfig{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		UserAgent:    cfg.RedditUserAgent,
		AuthURL:      cfg.RedditAuthURL,
		APIURL:       cfg.RedditAPIURL,
		MaxRetries:   cfg.RedditMaxRetries,
		Timeout:      cfg.HTTPTimeout,
	})

	columns := posts.Columns{ID: cfg.IDColumn, URL: cfg.URLColumn}
	var source pipeline.PostSource = posts.SheetSource{
		Sheets:  clients.NewSheetsClient(cfg.HTTPTimeout),
		SheetID: cfg.SheetID,
		Columns: columns,
	}
	if cfg.InputFile != "" {
		source = posts.FileSource{Path: cfg.InputFile, Columns: columns}
	}

	return &pipeline.Pipeline{
		Source:        source,
		Authenticator: reddit,
		Fetcher:       processing.NewCommentFetcher(reddit, console),
		Annotator:     sentiment.NewAnnotator(sentiment.NewPolarityModel(), naiveBayes, console),
		Writer:        report.FileWriter{Path: cfg.OutputFile},
		Progress:      console,
	}, nil
}
