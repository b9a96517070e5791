package models

import "time"

// Settings blob keys.
const SettingsKeyTrend = "trend"

// SettingsDoc — one string-keyed settings blob. The dashboard persists
// user-tunable parameters as loose documents; readers must tolerate missing
// or malformed shapes and fall back to their own defaults.
type SettingsDoc struct {
	Key       string         `bson:"key"       json:"key"`
	Value     map[string]any `bson:"value"     json:"value"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}
