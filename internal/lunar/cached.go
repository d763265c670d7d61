package lunar

import (
	"context"
	"slices"
	"time"

	"github.com/phuslu/log"

	"MoonSentinel/internal/cache"
	"MoonSentinel/internal/model"
)

type rangeKey struct {
	start, end time.Time
}

// CachedBuilder memoizes builds by (start, end) for the memo's TTL.
type CachedBuilder struct {
	builder *Builder
	memo    *cache.Memo[rangeKey, []model.MoonPoint]
}

// NewCachedBuilder wraps b with a memo of the given TTL.
func NewCachedBuilder(b *Builder, ttl time.Duration) *CachedBuilder {
	return &CachedBuilder{
		builder: b,
		memo:    cache.New[rangeKey, []model.MoonPoint](ttl, 64),
	}
}

// Build returns a copy of the memoized series or builds a fresh one.
func (c *CachedBuilder) Build(ctx context.Context, start, end time.Time) ([]model.MoonPoint, error) {
	key := rangeKey{start: model.DateOf(start), end: model.DateOf(end)}
	points, hit, err := c.memo.GetOrCompute(key, func() ([]model.MoonPoint, error) {
		return c.builder.Build(ctx, key.start, key.end)
	})
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("start", key.start.Format("2006-01-02")).
		Str("end", key.end.Format("2006-01-02")).
		Bool("cache_hit", hit).
		Int("days", len(points)).
		Msg("moon series ready")
	return slices.Clone(points), nil
}
