package model

import "time"

// Status is the receiver's externally visible state, served on
// /api/status and broadcast to websocket clients on every change.
type Status struct {
	CarID        string    `json:"car_id"`
	Mode         string    `json:"mode"`
	Avoidance    string    `json:"avoidance"`
	Motion       string    `json:"motion"`
	Buzzer       bool      `json:"buzzer"`
	LastDistance float64   `json:"last_distance_cm"`
	EchoOK       bool      `json:"echo_ok"`
	LastCommand  string    `json:"last_command"`
	Time         time.Time `json:"time"`
}

// Event is one journalled edge: a mode transition or an obstacle
// appearing/clearing. Diagnostic history only; the controller never
// reads events back.
type Event struct {
	ID         string    `json:"id"`
	CarID      string    `json:"car_id"`
	Time       time.Time `json:"time"`
	Kind       string    `json:"kind"` // "mode" | "obstacle"
	Detail     string    `json:"detail"`
	DistanceCm float64   `json:"distance_cm,omitempty"`
}
