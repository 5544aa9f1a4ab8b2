package model

import "time"

// Entry is one stored key/value pair within a browser origin.
type Entry struct {
	ID        string    `json:"id"`
	Origin    string    `json:"origin"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
