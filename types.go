package main

// Request/response DTOs. Keep them minimal and explicit.

type unlockReq struct {
	Passcode string `json:"passcode"`
}

type tokenResp struct {
	Token string `json:"token"`
}

type readingIn struct {
	Ts          int64    `json:"ts"` // epoch ms; 0 means server-assigned
	Temperature *float64 `json:"temperature,omitempty"`
	Moisture    *float64 `json:"moisture,omitempty"`
	Nitrogen    *float64 `json:"nitrogen,omitempty"`
	Phosphorus  *float64 `json:"phosphorus,omitempty"`
	Potassium   *float64 `json:"potassium,omitempty"`
}

type ingestReq struct {
	DeviceID string      `json:"deviceId,omitempty"`
	Readings []readingIn `json:"readings"`
}

type ingestResp struct {
	OK       bool `json:"ok"`
	Inserted int  `json:"inserted"`
}

type seriesResp struct {
	Field      string    `json:"field"`
	Unit       string    `json:"unit"`
	Values     []float64 `json:"values"`
	Timestamps []int64   `json:"timestamps"`
	Smoothed   []float64 `json:"smoothed"`
	Latest     string    `json:"latest"`
}

type anomaliesResp struct {
	Field      string  `json:"field"`
	ZThreshold float64 `json:"zThreshold"`
	Indices    []int   `json:"indices"`
	Samples    int     `json:"samples"`
}

// R is nil when the correlation is undefined (insufficient overlap or zero
// variance); the UI renders that as "--".
type correlationResp struct {
	X       string   `json:"x"`
	Y       string   `json:"y"`
	R       *float64 `json:"r"`
	Samples int      `json:"samples"`
}

type stabilityResp struct {
	Score   float64        `json:"score"`
	Samples map[string]int `json:"samples"`
}

// Payload we send to the alert webhook when a snapshot flags trouble.
type alertReq struct {
	DeviceID string   `json:"deviceId"`
	Ts       int64    `json:"ts"`
	Messages []string `json:"messages"`
}
