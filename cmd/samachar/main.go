package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	samachar "github.com/samachar-app/samachar"
	"github.com/samachar-app/samachar/internal/aggregate"
	"github.com/samachar-app/samachar/internal/ai"
	"github.com/samachar-app/samachar/internal/apikey"
	"github.com/samachar-app/samachar/internal/classify"
	"github.com/samachar-app/samachar/internal/config"
	"github.com/samachar-app/samachar/internal/database"
	"github.com/samachar-app/samachar/internal/extract"
	"github.com/samachar-app/samachar/internal/jobs"
	"github.com/samachar-app/samachar/internal/newsapi"
	"github.com/samachar-app/samachar/internal/server"
	"github.com/samachar-app/samachar/internal/storage"
	"github.com/samachar-app/samachar/internal/taxonomy"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	taxonomyPath := flag.String("taxonomy", "taxonomy.yaml", "Path to topic taxonomy file")
	jobName := flag.String("job", "", "Run a single job (ingest, quiz, digest) and exit")
	genKey := flag.Bool("genkey", false, "Generate a server API key and exit")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Samachar %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	if *genKey {
		key, err := apikey.Generate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate key: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(key)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	var logLevel slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Samachar", "version", version)

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Failed to resolve time zone", "error", err)
		os.Exit(1)
	}

	// Initialize database
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Database initialized", "path", cfg.Database.Path)

	// Load topic taxonomy
	tax, err := taxonomy.Load(*taxonomyPath, samachar.TaxonomyYAML)
	if err != nil {
		slog.Error("Failed to load taxonomy", "error", err)
		os.Exit(1)
	}
	classifier, err := classify.New(tax)
	if err != nil {
		slog.Error("Failed to build classifier", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded taxonomy", "topics", len(tax.Topics))

	// Initialize services
	news := newsapi.New(cfg.News.APIKey, cfg.News.Sources)
	collector := aggregate.New(news, cfg.News.Feeds, loc)
	extractor := extract.New()

	hf := ai.NewHuggingFaceClient(cfg.AI.HuggingFaceToken)
	groq := ai.NewGroqProvider(cfg.AI.GroqKey)
	aiClient := ai.NewClient(hf, groq, cfg.AI.SummaryModel, cfg.AI.QuizModel, cfg.AI.DigestModel)

	store, err := storage.New(storage.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		slog.Error("Failed to initialize digest storage", "error", err)
		os.Exit(1)
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		slog.Error("Failed to ensure digest bucket", "error", err)
		os.Exit(1)
	}

	ingest := jobs.NewIngest(db, collector, extractor, aiClient, classifier, loc)
	quiz := jobs.NewQuizJob(db, aiClient, loc)
	digest := jobs.NewDigestJob(db, aiClient, store, loc)

	digestDay, err := jobs.ParseWeekday(cfg.Jobs.DigestDay)
	if err != nil {
		slog.Error("Invalid digest day", "error", err)
		os.Exit(1)
	}
	sched, err := jobs.NewScheduler(db, loc, jobs.Config{
		IngestAt:  cfg.Jobs.IngestTime,
		QuizAt:    cfg.Jobs.QuizTime,
		DigestAt:  cfg.Jobs.DigestTime,
		DigestDay: digestDay,
	}, ingest, quiz, digest)
	if err != nil {
		slog.Error("Invalid job schedule", "error", err)
		os.Exit(1)
	}

	// One-shot mode: run the named job and exit.
	if *jobName != "" {
		if err := sched.RunNow(context.Background(), *jobName); err != nil {
			slog.Error("Job failed", "job", *jobName, "error", err)
			os.Exit(1)
		}
		slog.Info("Job completed", "job", *jobName)
		return
	}

	// Build HTTP server
	srv := server.New(cfg, db, store, sched, loc, version)

	// Start scheduler in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Jobs.Enabled {
		go sched.Run(ctx)
	} else {
		slog.Info("Scheduled jobs disabled")
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
