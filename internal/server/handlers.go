package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"MoonSentinel/internal/model"
)

// ErrorResponse is the error envelope of every failed request.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failure.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// PeriodInfo is one entry of GET /api/v1/periods.
type PeriodInfo struct {
	Code    model.Period `json:"code"`
	Label   string       `json:"label"`
	Days    int          `json:"days"`
	Default bool         `json:"default"`
}

// listPeriods handles GET /api/v1/periods
func (s *Server) listPeriods(c *gin.Context) {
	periods := make([]PeriodInfo, len(model.Periods))
	for i, p := range model.Periods {
		periods[i] = PeriodInfo{Code: p, Label: p.Label(), Days: p.Days(), Default: p == s.defaultPeriod}
	}
	c.JSON(http.StatusOK, gin.H{"periods": periods})
}

// runAnalysis handles GET /api/v1/analysis?period=6mo
func (s *Server) runAnalysis(c *gin.Context) {
	period := s.defaultPeriod
	if raw := c.Query("period"); raw != "" {
		p, err := model.ParsePeriod(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{
				Code:    "INVALID_PERIOD",
				Message: err.Error(),
				Details: map[string]any{"period": raw},
			}})
			return
		}
		period = p
	}

	report, err := s.runner.Run(c.Request.Context(), period)
	if err != nil {
		status, detail := errorDetail(err)
		c.JSON(status, ErrorResponse{Error: detail})
		return
	}
	c.JSON(http.StatusOK, report)
}

// errorDetail maps an analysis failure to an HTTP status and envelope.
func errorDetail(err error) (int, ErrorDetail) {
	var (
		unavailable *model.DataUnavailableError
		noOverlap   *model.NoOverlapError
		computation *model.ComputationError
	)
	switch {
	case errors.As(err, &unavailable):
		return http.StatusBadGateway, ErrorDetail{
			Code:    "DATA_UNAVAILABLE",
			Message: err.Error(),
			Details: map[string]any{"asset": unavailable.Asset, "period": unavailable.Period},
		}
	case errors.As(err, &noOverlap):
		return http.StatusUnprocessableEntity, ErrorDetail{
			Code:    "NO_OVERLAP",
			Message: err.Error(),
			Details: map[string]any{"price_points": noOverlap.PriceCount, "moon_points": noOverlap.MoonCount},
		}
	case errors.As(err, &computation):
		return http.StatusInternalServerError, ErrorDetail{
			Code:    "COMPUTATION_ERROR",
			Message: err.Error(),
			Details: map[string]any{"date": computation.Date.Format("2006-01-02")},
		}
	default:
		return http.StatusInternalServerError, ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: fmt.Sprintf("analysis failed: %v", err),
		}
	}
}
