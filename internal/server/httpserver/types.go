package httpserver

import "time"

// Response is the JSON envelope for every endpoint except /metrics.
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
	}
}

// StatsResponse is the data of GET /stats.
type StatsResponse struct {
	Version        string         `json:"version"`
	Commit         string         `json:"commit"`
	GoVersion      string         `json:"go_version"`
	StartedAt      time.Time      `json:"started_at"`
	Uptime         string         `json:"uptime"`
	UptimeSeconds  int64          `json:"uptime_seconds"`
	Connections    int            `json:"connections"`
	Keys           map[string]int `json:"keys"`
	KeysTotal      int            `json:"keys_total"`
	BitmapCapacity uint           `json:"bitmap_capacity,omitempty"`
}
