package lunar

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"MoonSentinel/internal/model"
)

// DefaultWorkers bounds concurrent model evaluations per build.
const DefaultWorkers = 4

// Builder turns a date range into a gap-free daily moon series.
type Builder struct {
	Model   IlluminationModel
	Workers int
}

// NewBuilder creates a Builder. workers <= 0 uses DefaultWorkers.
func NewBuilder(m IlluminationModel, workers int) *Builder {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Builder{Model: m, Workers: workers}
}

// DayCount returns the number of calendar days in [start, end], or 0 when
// start is after end.
func DayCount(start, end time.Time) int {
	s, e := model.DateOf(start), model.DateOf(end)
	if s.After(e) {
		return 0
	}
	return int((e.Unix()-s.Unix())/86400) + 1
}

// Build evaluates the model once for every calendar day from start to end
// inclusive. Each day's result lands in its own slot, so the output does not
// depend on scheduling. If the model fails on any day the whole build fails
// with a *model.ComputationError naming the earliest failing day.
func (b *Builder) Build(ctx context.Context, start, end time.Time) ([]model.MoonPoint, error) {
	s, e := model.DateOf(start), model.DateOf(end)
	if s.After(e) {
		return nil, &model.ComputationError{
			Date: s,
			Err:  fmt.Errorf("start date after end date %s", e.Format("2006-01-02")),
		}
	}

	n := DayCount(s, e)
	points := make([]model.MoonPoint, n)
	errs := make([]error, n)

	g, gctx := errgroup.WithContext(ctx)
	workers := b.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		date := s.AddDate(0, 0, i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			illum, err := b.Model.IlluminationAt(date)
			if err == nil && (math.IsNaN(illum) || illum < 0 || illum > 100) {
				err = fmt.Errorf("illumination %.4f out of range", illum)
			}
			if err != nil {
				errs[i] = err
				return nil
			}
			points[i] = model.NewMoonPoint(date, illum)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, err := range errs {
		if err != nil {
			return nil, &model.ComputationError{Date: s.AddDate(0, 0, i), Err: err}
		}
	}
	return points, nil
}

// ErrNilModel is returned by Validate for a Builder without a model.
var ErrNilModel = errors.New("lunar: illumination model is nil")

// Validate checks the builder is usable.
func (b *Builder) Validate() error {
	if b == nil || b.Model == nil {
		return ErrNilModel
	}
	return nil
}
