// Package events provides the in-process event bus used for reactive updates.
package events

import "time"

// EventType represents different event types
type EventType string

const (
	PositionAdded   EventType = "POSITION_ADDED"
	PositionRemoved EventType = "POSITION_REMOVED"
	PricesRefreshed EventType = "PRICES_REFRESHED"
	ErrorOccurred   EventType = "ERROR_OCCURRED"
)

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}
