package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"compostwatch/analytics"
	"compostwatch/models"
)

// startSnapshots schedules the periodic analytics snapshot.
func (a *App) startSnapshots() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(a.cfg.SnapshotCron, a.runSnapshot); err != nil {
		return nil, err
	}
	c.Start()
	a.log.WithField("schedule", a.cfg.SnapshotCron).Info("snapshot job scheduled")
	return c, nil
}

// runSnapshot computes a full analytics report over the trailing window and
// persists it, so the dashboard can page through history without
// recomputing. Trouble found along the way goes to the alert webhook.
func (a *App) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	settings := a.getTrendSettings(ctx)

	snap := models.Snapshot{
		DeviceID:    a.cfg.DeviceID,
		CreatedAt:   time.Now().UTC(),
		WindowHours: defaultWindowHours,
		Trends:      make(map[string]analytics.TrendResult, len(models.Fields)),
		Anomalies:   make(map[string][]int, len(models.Fields)),
		Latest:      make(map[string]string, len(models.Fields)),
	}

	series := make(map[string][]float64, len(models.Fields))
	var tempTs []int64
	var alerts []string

	for _, field := range models.Fields {
		values, timestamps, err := a.loadSeries(ctx, field, defaultWindowHours)
		if err != nil {
			a.log.WithError(err).WithField("field", field).Error("snapshot: failed to load series")
			return
		}
		series[field] = values
		if field == models.FieldTemperature {
			tempTs = timestamps
		}

		trend := analytics.ComputeTrend(values, timestamps, settings)
		snap.Trends[field] = trend

		anomalies := analytics.DetectAnomalies(values, analytics.DefaultZThreshold)
		snap.Anomalies[field] = anomalies

		latest := math.NaN()
		if len(values) > 0 {
			latest = values[len(values)-1]
		}
		snap.Latest[field] = analytics.FormatValue(latest, models.UnitFor(field))

		if len(anomalies) > 0 {
			alerts = append(alerts, fmt.Sprintf("%s: %d anomalous samples in the last %dh",
				field, len(anomalies), int(defaultWindowHours)))
		}
		if field == models.FieldTemperature && trend.Trend == analytics.TrendFalling {
			alerts = append(alerts, "temperature: "+trend.Interp)
		}
	}

	snap.Harvest = analytics.HarvestMetrics(
		series[models.FieldTemperature], tempTs, series[models.FieldMoisture],
		analytics.HarvestOptions{})
	snap.Stability = analytics.OverallStabilityScore(series)

	if _, err := a.reports.InsertOne(ctx, snap); err != nil {
		a.log.WithError(err).Error("snapshot: failed to persist report")
		return
	}
	a.log.WithField("stability", snap.Stability).Info("snapshot stored")

	if len(alerts) > 0 {
		if err := a.postAlertWebhook(ctx, alertReq{
			DeviceID: a.cfg.DeviceID,
			Ts:       time.Now().UnixMilli(),
			Messages: alerts,
		}); err != nil {
			a.log.WithError(err).Warn("alert webhook delivery failed")
		}
	}
}

// handleLatestReport returns the most recent stored snapshot.
func (a *App) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var snap models.Snapshot
	err := a.reports.FindOne(ctx,
		bson.M{"deviceId": a.cfg.DeviceID},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	).Decode(&snap)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "no reports yet", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}
