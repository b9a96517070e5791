package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Monitored sensor fields.
const (
	FieldTemperature = "temperature"
	FieldMoisture    = "moisture"
	FieldNitrogen    = "nitrogen"
	FieldPhosphorus  = "phosphorus"
	FieldPotassium   = "potassium"
)

// Fields lists every monitored sensor field in display order.
var Fields = []string{
	FieldTemperature,
	FieldMoisture,
	FieldNitrogen,
	FieldPhosphorus,
	FieldPotassium,
}

// Reading — one sensor sample pushed by the monitor device (or generated by
// the simulator). Ts is epoch milliseconds, device-assigned when the payload
// carries it and server-assigned otherwise. Missing fields stay nil; a probe
// does not report every metric on every sample.
type Reading struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DeviceID   string             `bson:"deviceId"      json:"deviceId"`
	Ts         int64              `bson:"ts"            json:"ts"`
	ReceivedAt time.Time          `bson:"receivedAt"    json:"receivedAt"`

	Temperature *float64 `bson:"temperature,omitempty" json:"temperature,omitempty"` // °C
	Moisture    *float64 `bson:"moisture,omitempty"    json:"moisture,omitempty"`    // %
	Nitrogen    *float64 `bson:"nitrogen,omitempty"    json:"nitrogen,omitempty"`    // ppm
	Phosphorus  *float64 `bson:"phosphorus,omitempty"  json:"phosphorus,omitempty"`  // ppm
	Potassium   *float64 `bson:"potassium,omitempty"   json:"potassium,omitempty"`   // ppm
}

// FieldValue returns the named field's value, or false when this sample does
// not carry it.
func (r Reading) FieldValue(field string) (float64, bool) {
	var p *float64
	switch field {
	case FieldTemperature:
		p = r.Temperature
	case FieldMoisture:
		p = r.Moisture
	case FieldNitrogen:
		p = r.Nitrogen
	case FieldPhosphorus:
		p = r.Phosphorus
	case FieldPotassium:
		p = r.Potassium
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// KnownField reports whether field names a monitored metric.
func KnownField(field string) bool {
	switch field {
	case FieldTemperature, FieldMoisture, FieldNitrogen, FieldPhosphorus, FieldPotassium:
		return true
	}
	return false
}

// UnitFor maps a field to its display unit.
func UnitFor(field string) string {
	switch field {
	case FieldTemperature:
		return "°C"
	case FieldMoisture:
		return "%"
	default:
		return "ppm"
	}
}
