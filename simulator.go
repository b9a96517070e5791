package main

import (
	"context"
	"math/rand"
	"time"

	"compostwatch/models"
)

// simulatorInterval matches the cadence the analytics fall back to for
// series without timestamps.
const simulatorInterval = 9 * time.Second

// startSimulator generates plausible pile readings on a fixed cadence until
// ctx is cancelled. It stands in for the live feed during development and
// demos: a slow random walk per field, so trends and anomalies stay visible
// but not absurd.
func (a *App) startSimulator(ctx context.Context) {
	temp := 35.0
	moist := 55.0
	n, p, k := 420.0, 180.0, 310.0

	step := func(v, min, max, jitter float64) float64 {
		v += (rand.Float64()*2 - 1) * jitter
		if v < min {
			v = min
		}
		if v > max {
			v = max
		}
		return v
	}

	ticker := time.NewTicker(simulatorInterval)
	go func() {
		defer ticker.Stop()
		a.log.Info("no MQTT broker configured, starting reading simulator")
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				temp = step(temp, 15, 70, 0.4)
				moist = step(moist, 20, 90, 0.8)
				n = step(n, 50, 900, 4)
				p = step(p, 20, 500, 2)
				k = step(k, 40, 800, 3)

				tv, mv, nv, pv, kv := temp, moist, n, p, k
				reading := models.Reading{
					DeviceID:    a.cfg.DeviceID,
					Ts:          t.UnixMilli(),
					ReceivedAt:  t,
					Temperature: &tv,
					Moisture:    &mv,
					Nitrogen:    &nv,
					Phosphorus:  &pv,
					Potassium:   &kv,
				}
				insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				if _, err := a.readings.InsertOne(insertCtx, reading); err != nil {
					a.log.WithError(err).Error("failed to store simulated reading")
				}
				cancel()
			}
		}
	}()
}
