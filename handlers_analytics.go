package main

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"compostwatch/analytics"
	"compostwatch/models"
)

// handleTrend classifies one field's recent direction. The classifier
// thresholds are read fresh from the settings store on every call.
func (a *App) handleTrend(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if !models.KnownField(field) {
		http.Error(w, "unknown field", http.StatusBadRequest)
		return
	}
	hours := queryFloat(r, "hours", defaultWindowHours)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	values, timestamps, err := a.loadSeries(ctx, field, hours)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	settings := a.getTrendSettings(ctx)
	_ = json.NewEncoder(w).Encode(analytics.ComputeTrend(values, timestamps, settings))
}

// handleAnomalies flags z-score outliers in one field's recent series.
func (a *App) handleAnomalies(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if !models.KnownField(field) {
		http.Error(w, "unknown field", http.StatusBadRequest)
		return
	}
	hours := queryFloat(r, "hours", defaultWindowHours)
	z := queryFloat(r, "z", analytics.DefaultZThreshold)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	values, _, err := a.loadSeries(ctx, field, hours)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(anomaliesResp{
		Field:      field,
		ZThreshold: z,
		Indices:    analytics.DetectAnomalies(values, z),
		Samples:    len(values),
	})
}

// handleCorrelation computes Pearson's r between two fields over the same
// trailing window. An undefined correlation encodes as null.
func (a *App) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	x := r.URL.Query().Get("x")
	y := r.URL.Query().Get("y")
	if !models.KnownField(x) || !models.KnownField(y) {
		http.Error(w, "unknown field", http.StatusBadRequest)
		return
	}
	hours := queryFloat(r, "hours", defaultWindowHours)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	xs, _, err := a.loadSeries(ctx, x, hours)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	ys, _, err := a.loadSeries(ctx, y, hours)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	resp := correlationResp{X: x, Y: y, Samples: n}
	if rho := analytics.PearsonCorrelation(xs, ys); !math.IsNaN(rho) {
		resp.R = &rho
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// handleRate returns one field's hourly rate of change.
func (a *App) handleRate(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if !models.KnownField(field) {
		http.Error(w, "unknown field", http.StatusBadRequest)
		return
	}
	hours := queryFloat(r, "hours", defaultWindowHours)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	values, timestamps, err := a.loadSeries(ctx, field, hours)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(analytics.RateOfChangePerHour(values, timestamps))
}

// handleProjection extrapolates one field to a target value. With no
// meaningful trend the response body is null.
func (a *App) handleProjection(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if !models.KnownField(field) {
		http.Error(w, "unknown field", http.StatusBadRequest)
		return
	}
	target, err := strconv.ParseFloat(r.URL.Query().Get("target"), 64)
	if err != nil {
		http.Error(w, "target is required", http.StatusBadRequest)
		return
	}
	hours := queryFloat(r, "hours", defaultWindowHours)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	values, timestamps, err := a.loadSeries(ctx, field, hours)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(analytics.TimeToTarget(values, timestamps, target))
}

// handleHarvest returns the degree-hour maturity report.
func (a *App) handleHarvest(w http.ResponseWriter, r *http.Request) {
	hours := queryFloat(r, "hours", defaultWindowHours)
	opts := analytics.HarvestOptions{
		BaseTemp:  queryFloat(r, "baseTemp", analytics.DefaultCdhBaseline),
		TargetCdh: queryFloat(r, "targetCdh", analytics.DefaultTargetCdh),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	temps, timestamps, err := a.loadSeries(ctx, models.FieldTemperature, hours)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	moisture, _, err := a.loadSeries(ctx, models.FieldMoisture, hours)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(analytics.HarvestMetrics(temps, timestamps, moisture, opts))
}

// handleStability returns the overall stability score across all fields.
func (a *App) handleStability(w http.ResponseWriter, r *http.Request) {
	hours := queryFloat(r, "hours", defaultWindowHours)

	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	series := make(map[string][]float64, len(models.Fields))
	samples := make(map[string]int, len(models.Fields))
	for _, field := range models.Fields {
		values, _, err := a.loadSeries(ctx, field, hours)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		series[field] = values
		samples[field] = len(values)
	}
	_ = json.NewEncoder(w).Encode(stabilityResp{
		Score:   analytics.OverallStabilityScore(series),
		Samples: samples,
	})
}
