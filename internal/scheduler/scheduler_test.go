package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MoonSentinel/internal/model"
)

type fakeRunner struct {
	periods []model.Period
	err     error
}

func (f *fakeRunner) Run(_ context.Context, p model.Period) (*model.AnalysisReport, error) {
	f.periods = append(f.periods, p)
	if f.err != nil {
		return nil, f.err
	}
	return &model.AnalysisReport{
		ID:            "r1",
		Asset:         model.NewAsset("BTC-USD", ""),
		Period:        p,
		GeneratedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Correlation:   model.CorrelationResult{Coefficient: -0.02, PValue: 0.9, N: 30},
		Verdict:       model.VerdictNoEffect,
		NarrativeText: "📊 Science Prevails Over Superstition",
	}, nil
}

type fakeSender struct{ sent []string }

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.sent = append(f.sent, text)
	return nil
}

func newTestScheduler(r Runner, s Sender) *Scheduler {
	return NewScheduler(context.Background(), r, s, model.Period6Months)
}

func TestHandleCommand_Analyze(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestScheduler(runner, &fakeSender{})

	reply := s.HandleCommand(context.Background(), "/analyze")
	assert.Contains(t, reply, "JUST COINCIDENCE")
	assert.Contains(t, reply, "Science Prevails")

	s.HandleCommand(context.Background(), "/analyze 1y")
	s.HandleCommand(context.Background(), "/analyze@moon_bot 3 Months")
	assert.Equal(t, []model.Period{model.Period6Months, model.Period1Year, model.Period3Months}, runner.periods)
}

func TestHandleCommand_BadPeriod(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestScheduler(runner, &fakeSender{})

	reply := s.HandleCommand(context.Background(), "/analyze 10y")
	assert.Contains(t, reply, "unsupported period")
	assert.Empty(t, runner.periods)
}

func TestHandleCommand_AnalysisError(t *testing.T) {
	runner := &fakeRunner{err: &model.NoOverlapError{PriceCount: 3}}
	s := newTestScheduler(runner, &fakeSender{})

	assert.Contains(t, s.HandleCommand(context.Background(), "/analyze"), "share no dates")
}

func TestHandleCommand_PeriodsAndHelp(t *testing.T) {
	s := newTestScheduler(&fakeRunner{}, &fakeSender{})

	assert.Contains(t, s.HandleCommand(context.Background(), "/periods"), "2 Years")
	assert.Contains(t, s.HandleCommand(context.Background(), "hello"), "/analyze [period]")
	assert.Contains(t, s.HandleCommand(context.Background(), "   "), "/periods")
}

func TestRunNow_SendsReportOrError(t *testing.T) {
	sender := &fakeSender{}
	runner := &fakeRunner{}
	s := newTestScheduler(runner, sender)

	s.RunNow(model.Period1Month)
	runner.err = &model.DataUnavailableError{Asset: "BTC-USD", Period: model.Period1Month, Err: errors.New("timeout")}
	s.RunNow(model.Period1Month)

	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[0], "1 Month")
	assert.Contains(t, sender.sent[1], "Could not fetch price data")
}

func TestRegister(t *testing.T) {
	s := newTestScheduler(&fakeRunner{}, &fakeSender{})

	require.NoError(t, s.Register("0 0 9 * * 1", model.Period6Months))
	assert.Len(t, s.Cron.Entries(), 1)

	assert.Error(t, s.Register("not a cron", model.Period6Months))
	assert.Error(t, s.Register("0 0 9 * * 1", model.Period("5y")))
}
