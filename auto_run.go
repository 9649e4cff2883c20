package main

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// BuildPipeline wires the live collaborators for one run. The Google
// clients are rebuilt per run so a token uploaded after startup is picked
// up without a restart.
func BuildPipeline(ctx context.Context, cfg Config) (*Pipeline, error) {
	mailbox, err := NewGmailMailbox(ctx, cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		return nil, err
	}
	cal, err := NewGoogleCalendar(ctx, cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		Mailbox:  mailbox,
		Calendar: cal,
		NewOracle: func(provider, apiKey string) (Oracle, error) {
			if provider == "" {
				provider = cfg.LLMProvider
			}
			if apiKey == "" {
				apiKey = cfg.APIKeyFor(provider)
			}
			return NewOracle(provider, apiKey, cfg.LLMModel, cfg.LLMBaseURL)
		},
	}, nil
}

// defaultRequest is the request shape scheduled runs use: everything from
// config, nothing per-call.
func defaultRequest(cfg Config) AnalysisRequest {
	return AnalysisRequest{
		Intent:         cfg.DefaultIntent,
		EmailCount:     cfg.DefaultEmailCount,
		AddKeywords:    cfg.AddKeywords,
		RemoveKeywords: cfg.RemoveKeywords,
		CustomPrompt:   cfg.CustomPrompt,
		Provider:       cfg.LLMProvider,
	}
}

// StartAutoRunScheduler runs the pipeline on a cron schedule with the
// configured defaults, records each run, and posts the digest to Slack
// when a notifier is configured. The schedule is a standard 5-field cron
// expression; empty disables auto-run.
func StartAutoRunScheduler(cfg Config, db *sql.DB, notifier *SlackNotifier) {
	schedule := strings.TrimSpace(cfg.AutoRunSchedule)
	if schedule == "" {
		log.Println("Auto-run disabled (auto_run_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid auto_run_schedule '%s': %v. Auto-run disabled", schedule, err)
		return
	}
	log.Printf("Auto-run scheduled (cron: %s) intent=%s provider=%s", schedule, cfg.DefaultIntent, cfg.LLMProvider)

	go func() {
		for {
			now := time.Now().In(fixedZone)
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next auto-run at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			runAutoAnalysis(cfg, db, notifier)
		}
	}()
}

func runAutoAnalysis(cfg Config, db *sql.DB, notifier *SlackNotifier) {
	ctx := context.Background()
	started := time.Now()

	pipeline, err := BuildPipeline(ctx, cfg)
	if err != nil {
		log.Printf("Auto-run build error: %v", err)
		return
	}

	req := defaultRequest(cfg)
	result, err := pipeline.RunSmartAnalysis(ctx, req)
	if err != nil {
		log.Printf("Auto-run error: %v", err)
		return
	}

	total := len(result.Matched) + len(result.Removed) + len(result.Pending) + result.DroppedOnError
	if _, err := RecordRun(db, req, result, total, time.Since(started)); err != nil {
		log.Printf("Auto-run record error: %v", err)
	}
	log.Printf("Auto-run complete matched=%d removed=%d pending=%d dropped=%d",
		len(result.Matched), len(result.Removed), len(result.Pending), result.DroppedOnError)

	notifier.PostRunDigest(req.Intent, result)
}
