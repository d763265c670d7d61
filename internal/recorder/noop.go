package recorder

import (
	"time"

	"MoonSentinel/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) LoadBars(string, model.Period, time.Duration) ([]model.PricePoint, bool, error) {
	return nil, false, nil
}
func (n *NoopRecorder) SaveBars(string, model.Period, []model.PricePoint) error { return nil }
func (n *NoopRecorder) Close() error                                            { return nil }
