package main

import (
	"context"
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"compostwatch/models"
)

// feedPayload is what the monitor device publishes: epoch-ms timestamp plus
// whichever fields the probe sampled this tick.
type feedPayload struct {
	DeviceID    string   `json:"deviceId,omitempty"`
	Ts          int64    `json:"ts"`
	Temperature *float64 `json:"temperature,omitempty"`
	Moisture    *float64 `json:"moisture,omitempty"`
	Nitrogen    *float64 `json:"nitrogen,omitempty"`
	Phosphorus  *float64 `json:"phosphorus,omitempty"`
	Potassium   *float64 `json:"potassium,omitempty"`
}

// startFeed subscribes to the device's MQTT topic and stores every reading.
// The returned client should be disconnected on shutdown.
func (a *App) startFeed() (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(a.cfg.MQTTBroker).
		SetClientID("compostwatch-api").
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	client := mqtt.NewClient(opts)

	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	if token := client.Subscribe(a.cfg.MQTTTopic, 1, a.handleFeedMessage); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return nil, token.Error()
	}

	a.log.WithFields(logrus.Fields{
		"broker": a.cfg.MQTTBroker,
		"topic":  a.cfg.MQTTTopic,
	}).Info("subscribed to sensor feed")
	return client, nil
}

// handleFeedMessage stores one pushed reading. Bad payloads are logged and
// dropped; the feed must keep flowing.
func (a *App) handleFeedMessage(_ mqtt.Client, msg mqtt.Message) {
	var in feedPayload
	if err := json.Unmarshal(msg.Payload(), &in); err != nil {
		a.log.WithError(err).Warn("dropping unparsable feed payload")
		return
	}

	now := time.Now()
	ts := in.Ts
	if ts <= 0 {
		ts = now.UnixMilli()
	}
	deviceID := in.DeviceID
	if deviceID == "" {
		deviceID = a.cfg.DeviceID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := a.readings.InsertOne(ctx, models.Reading{
		DeviceID:    deviceID,
		Ts:          ts,
		ReceivedAt:  now,
		Temperature: in.Temperature,
		Moisture:    in.Moisture,
		Nitrogen:    in.Nitrogen,
		Phosphorus:  in.Phosphorus,
		Potassium:   in.Potassium,
	})
	if err != nil {
		a.log.WithError(err).Error("failed to store feed reading")
	}
}
