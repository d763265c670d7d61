package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MoonSentinel/internal/model"
)

func TestRESTFetcher_FetchDailyBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bars/daily", r.URL.Path)
		assert.Equal(t, "ETH-USD", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1y", r.URL.Query().Get("period"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"timestamp": 1704240000, "close": "2400.5"},
			{"timestamp": 1704153600, "close": 2300},
			{"timestamp": 1704326400, "close": "0"}
		]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "", 5*time.Second)
	bars, err := f.FetchDailyBars(context.Background(), "ETH-USD", model.Period1Year)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, "2024-01-02", bars[0].Date.Format(time.DateOnly))
	assert.Equal(t, "2300", bars[0].Close.String())
	assert.Equal(t, "2400.5", bars[1].Close.String())
}

func TestRESTFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream down"}`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "", "", 5*time.Second)
	_, err := f.FetchDailyBars(context.Background(), "ETH-USD", model.Period1Year)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
	assert.Contains(t, err.Error(), "502")
}

func TestRESTFetcher_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "", "", 5*time.Second)
	_, err := f.FetchDailyBars(context.Background(), "ETH-USD", model.Period1Month)
	assert.ErrorIs(t, err, ErrNoData)
}
