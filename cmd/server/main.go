package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ai-rewriter/internal/auth"
	"ai-rewriter/internal/config"
	"ai-rewriter/internal/history"
	"ai-rewriter/internal/llm"
	"ai-rewriter/internal/rewrite"
	"ai-rewriter/internal/scheduler"
	"ai-rewriter/internal/stats"
	"ai-rewriter/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	store, err := history.NewFileStore(cfg.HistoryFilePath)
	if err != nil {
		log.Fatalf("failed to init history store: %v", err)
	}
	agg, err := stats.NewAggregator(cfg.StatsFilePath)
	if err != nil {
		log.Fatalf("failed to init stats aggregator: %v", err)
	}

	llmClient, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider))
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	rewriter := rewrite.New(llmClient, store, agg, cfg.RewriteLanguage, cfg.RewriteTimeout)
	authSvc := auth.New(cfg.AuthUsername, cfg.AuthPasswordSHA256, cfg.SessionTTL)

	sched := scheduler.New(cfg.DailyReportCron)
	sched.SetReportFunction(func(ctx context.Context) error {
		u := agg.Snapshot()
		today := time.Now().Format(stats.DateLayout)
		log.Printf("daily usage report: %d rewrites total, %d characters, %d today",
			u.TotalRewrites, u.TotalCharacters, u.DailyUsage[today])
		return nil
	})
	if err := sched.Start(); err != nil {
		log.Printf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	srv := web.NewServer(authSvc, rewriter, store, agg, cfg.HTTPPort, cfg.SessionTTL, cfg.RewriteLanguage)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		log.Fatalf("web server failed: %v", err)
	case sig := <-sigCh:
		log.Printf("received %v, shutting down", sig)
		if err := srv.Stop(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
