package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"MoonSentinel/internal/model"
	"MoonSentinel/internal/notifier"
)

// Runner runs one analysis. Implemented by *analysis.Analyzer.
type Runner interface {
	Run(ctx context.Context, period model.Period) (*model.AnalysisReport, error)
}

// Sender delivers a formatted message. Implemented by *notifier.TelegramNotifier.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs scheduled analyses and answers bot commands.
type Scheduler struct {
	Cron          *cron.Cron
	Runner        Runner
	Notifier      Sender
	DefaultPeriod model.Period
	Ctx           context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner Runner, sender Sender, defaultPeriod model.Period) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Runner:        runner,
		Notifier:      sender,
		DefaultPeriod: defaultPeriod,
		Ctx:           ctx,
	}
}

// Register adds the periodic analysis report for period.
func (s *Scheduler) Register(analysisCron string, period model.Period) error {
	if !period.Valid() {
		return fmt.Errorf("register analysis task: unsupported period %q", period)
	}
	if _, err := s.Cron.AddFunc(analysisCron, func() { s.analysisTask(period) }); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the analysis task immediately (for RUN_ON_START).
func (s *Scheduler) RunNow(period model.Period) {
	s.analysisTask(period)
}

func (s *Scheduler) analysisTask(period model.Period) {
	start := time.Now()
	log.Info().Str("period", string(period)).Msg("running scheduled analysis")
	s.trySend(s.analyze(s.Ctx, period))
	log.Info().Str("period", string(period)).Dur("took", time.Since(start)).Msg("scheduled analysis done")
}

// analyze runs one analysis and renders either the report or the failure.
func (s *Scheduler) analyze(ctx context.Context, period model.Period) string {
	report, err := s.Runner.Run(ctx, period)
	if err != nil {
		log.Error().Err(err).Str("period", string(period)).Msg("analysis failed")
		return notifier.FormatError(err)
	}
	return notifier.FormatReport(report)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp(s.DefaultPeriod)
	}
	// Group chats address commands as /analyze@botname.
	name, _, _ := strings.Cut(fields[0], "@")

	switch name {
	case "/analyze", "analyze":
		period := s.DefaultPeriod
		if len(fields) > 1 {
			p, err := model.ParsePeriod(strings.Join(fields[1:], " "))
			if err != nil {
				return fmt.Sprintf("❌ %v\n\n%s", err, notifier.FormatPeriods())
			}
			period = p
		}
		return s.analyze(ctx, period)
	case "/periods", "periods":
		return notifier.FormatPeriods()
	default:
		return notifier.FormatHelp(s.DefaultPeriod)
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
