package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemo_GetSet(t *testing.T) {
	m := New[string, []int](time.Hour, 10)

	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Set("a", []int{1, 2, 3})
	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestMemo_TTLExpiration(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := New[string, int](time.Hour, 10).WithClock(clock.Now)

	m.Set("k", 42)
	clock.Advance(59 * time.Minute)
	v, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	clock.Advance(time.Minute)
	_, ok = m.Get("k")
	assert.False(t, ok, "entry must not be served at or after its TTL")
	assert.Equal(t, 0, m.Len())
}

func TestMemo_EvictsOldest(t *testing.T) {
	m := New[int, string](time.Hour, 2)
	m.Set(1, "one")
	m.Set(2, "two")
	m.Set(3, "three")

	_, ok := m.Get(1)
	assert.False(t, ok)
	_, ok = m.Get(2)
	assert.True(t, ok)
	_, ok = m.Get(3)
	assert.True(t, ok)

	// overwriting an existing key does not evict
	m.Set(2, "deux")
	v, _ := m.Get(2)
	assert.Equal(t, "deux", v)
	assert.Equal(t, 2, m.Len())
}

func TestMemo_GetOrCompute(t *testing.T) {
	m := New[string, int](time.Hour, 0)
	calls := 0
	compute := func() (int, error) {
		calls++
		return 7, nil
	}

	v, hit, err := m.GetOrCompute("x", compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 7, v)

	v, hit, err = m.GetOrCompute("x", compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)
}

func TestMemo_ErrorsAreNotMemoized(t *testing.T) {
	m := New[string, int](time.Hour, 0)
	boom := errors.New("boom")

	_, _, err := m.GetOrCompute("x", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, m.Len())

	v, hit, err := m.GetOrCompute("x", func() (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 3, v)
}

func TestMemo_ConcurrentAccess(t *testing.T) {
	m := New[int, int](time.Hour, 50)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Set(j, i)
				m.Get(j)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, m.Len(), 50)
}
