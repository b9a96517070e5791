package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"compostwatch/analytics"
)

// Snapshot — one periodic analytics report persisted by the snapshot job.
// It captures per-field trends and anomalies over the trailing window plus
// the maturity and stability composites, so the dashboard can show history
// without recomputing it.
type Snapshot struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DeviceID    string             `bson:"deviceId"      json:"deviceId"`
	CreatedAt   time.Time          `bson:"createdAt"     json:"createdAt"`
	WindowHours float64            `bson:"windowHours"   json:"windowHours"`

	Trends    map[string]analytics.TrendResult `bson:"trends"    json:"trends"`
	Anomalies map[string][]int                 `bson:"anomalies" json:"anomalies"`
	Latest    map[string]string                `bson:"latest"    json:"latest"` // formatted latest value per field
	Harvest   analytics.HarvestReport          `bson:"harvest"   json:"harvest"`
	Stability float64                          `bson:"stability" json:"stability"`
}
