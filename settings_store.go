package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"compostwatch/analytics"
	"compostwatch/models"
)

// getTrendSettings reads the trend thresholds from the settings store.
// Read-through on every call, no caching: the dashboard may have just saved
// new values. Missing or malformed blobs fall back to the defaults.
func (a *App) getTrendSettings(ctx context.Context) analytics.TrendSettings {
	var doc models.SettingsDoc
	err := a.settings.FindOne(ctx, bson.M{"key": models.SettingsKeyTrend}).Decode(&doc)
	if err != nil {
		return analytics.DefaultTrendSettings()
	}
	return trendSettingsFromBlob(doc.Value)
}

// trendSettingsFromBlob decodes a loose settings blob, keeping the default
// for any field that is absent, non-numeric, or non-positive.
func trendSettingsFromBlob(value map[string]any) analytics.TrendSettings {
	s := analytics.DefaultTrendSettings()
	if v, ok := blobNumber(value, "slopeNormThreshold"); ok && v > 0 {
		s.SlopeNormThreshold = v
	}
	if v, ok := blobNumber(value, "pctThreshold"); ok && v > 0 {
		s.PctThreshold = v
	}
	if v, ok := blobNumber(value, "slightPct"); ok && v > 0 {
		s.SlightPct = v
	}
	return s
}

// blobNumber pulls a numeric field out of a decoded blob. BSON hands back
// float64, int32 or int64 depending on how the value was written.
func blobNumber(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

// handleGetTrendSettings returns the active thresholds (stored or default).
func (a *App) handleGetTrendSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	_ = json.NewEncoder(w).Encode(a.getTrendSettings(ctx))
}

// handlePutTrendSettings upserts the thresholds blob. Values must be
// positive; zero or negative thresholds would make every series "Rising".
func (a *App) handlePutTrendSettings(w http.ResponseWriter, r *http.Request) {
	var req analytics.TrendSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.SlopeNormThreshold <= 0 || req.PctThreshold <= 0 || req.SlightPct <= 0 {
		http.Error(w, "thresholds must be positive", http.StatusBadRequest)
		return
	}

	doc := models.SettingsDoc{
		Key: models.SettingsKeyTrend,
		Value: map[string]any{
			"slopeNormThreshold": req.SlopeNormThreshold,
			"pctThreshold":       req.PctThreshold,
			"slightPct":          req.SlightPct,
		},
		UpdatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	_, err := a.settings.ReplaceOne(ctx,
		bson.M{"key": models.SettingsKeyTrend},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(req)
}
