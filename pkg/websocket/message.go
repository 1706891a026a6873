package websocket

import "time"

// Envelope - конверт для всех сообщений; по Type фронтенд решает, что делать.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
