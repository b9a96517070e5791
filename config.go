package main

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string

	// MQTT feed; an empty broker enables the built-in simulator instead.
	MQTTBroker string
	MQTTTopic  string
	DeviceID   string

	// Dashboard lock gate. An empty hash leaves the dashboard unlocked.
	GatePasscodeHash string
	JWTSecret        string

	Port         string
	SnapshotCron string
	AlertWebhook string
}

func mustConfig() Config {
	_ = godotenv.Load()

	return Config{
		MongoURI:         getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getenv("MONGO_DB", "compostwatch"),
		MQTTBroker:       getenv("MQTT_BROKER", ""),
		MQTTTopic:        getenv("MQTT_TOPIC", "compostwatch/readings"),
		DeviceID:         getenv("DEVICE_ID", "pile-1"),
		GatePasscodeHash: getenv("GATE_PASSCODE_HASH", ""),
		JWTSecret:        getenv("JWT_SECRET", "change_me"),
		Port:             getenv("PORT", "8080"),
		SnapshotCron:     getenv("SNAPSHOT_CRON", "@every 15m"),
		AlertWebhook:     getenv("ALERT_WEBHOOK_URL", ""),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
