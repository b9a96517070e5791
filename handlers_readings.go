package main

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"compostwatch/analytics"
	"compostwatch/models"
)

const (
	defaultWindowHours = 72
	maxSeriesSamples   = 1000
)

// handleIngestReadings stores a batch of samples pushed over HTTP. Samples
// without a device-assigned timestamp get a server-assigned one.
func (a *App) handleIngestReadings(w http.ResponseWriter, r *http.Request) {
	var req ingestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if len(req.Readings) == 0 {
		http.Error(w, "readings are required", http.StatusBadRequest)
		return
	}
	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = a.cfg.DeviceID
	}

	now := time.Now()
	docs := make([]interface{}, len(req.Readings))
	for i, in := range req.Readings {
		ts := in.Ts
		if ts <= 0 {
			ts = now.UnixMilli()
		}
		docs[i] = models.Reading{
			DeviceID:    deviceID,
			Ts:          ts,
			ReceivedAt:  now,
			Temperature: in.Temperature,
			Moisture:    in.Moisture,
			Nitrogen:    in.Nitrogen,
			Phosphorus:  in.Phosphorus,
			Potassium:   in.Potassium,
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	res, err := a.readings.InsertMany(ctx, docs)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(ingestResp{OK: true, Inserted: len(res.InsertedIDs)})
}

// handleGetSeries returns one field's recent series with its smoothed curve
// and a formatted latest value.
func (a *App) handleGetSeries(w http.ResponseWriter, r *http.Request) {
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

	latest := analytics.FormatValue(math.NaN(), models.UnitFor(field))
	if len(values) > 0 {
		latest = analytics.FormatValue(values[len(values)-1], models.UnitFor(field))
	}
	_ = json.NewEncoder(w).Encode(seriesResp{
		Field:      field,
		Unit:       models.UnitFor(field),
		Values:     values,
		Timestamps: timestamps,
		Smoothed:   analytics.MovingAverage(values, analytics.DefaultMovingAverageWindow),
		Latest:     latest,
	})
}

// loadSeries pulls one field's values and timestamps for the trailing
// window, oldest first, capped at maxSeriesSamples.
func (a *App) loadSeries(ctx context.Context, field string, hours float64) ([]float64, []int64, error) {
	since := time.Now().Add(-time.Duration(hours * float64(time.Hour))).UnixMilli()
	filter := bson.M{
		"deviceId": a.cfg.DeviceID,
		"ts":       bson.M{"$gte": since},
		field:      bson.M{"$exists": true},
	}
	cur, err := a.readings.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "ts", Value: 1}}).SetLimit(maxSeriesSamples))
	if err != nil {
		return nil, nil, err
	}
	defer cur.Close(ctx)

	var docs []models.Reading
	if err := cur.All(ctx, &docs); err != nil {
		return nil, nil, err
	}

	values := make([]float64, 0, len(docs))
	timestamps := make([]int64, 0, len(docs))
	for _, d := range docs {
		v, ok := d.FieldValue(field)
		if !ok {
			continue
		}
		values = append(values, v)
		timestamps = append(timestamps, d.Ts)
	}
	return values, timestamps, nil
}

// queryFloat parses a numeric query parameter, falling back to def on
// missing or unparsable input.
func queryFloat(r *http.Request, key string, def float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
