package models

import "github.com/uptrace/bun"

// Event is a schedulable activity with a location, a cost, and the
// days of the week it recurs on. days_of_week is stored as a JSON
// array so it works the same on Postgres and SQLite.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID                  int64    `bun:"id,pk,autoincrement" json:"id"`
	Title               string   `bun:"title,notnull" json:"title"`
	ShortDescription    string   `bun:"short_description,notnull" json:"short_description"`
	DetailedDescription string   `bun:"detailed_description,notnull" json:"detailed_description"`
	City                string   `bun:"city,notnull" json:"city"`
	DaysOfWeek          []string `bun:"days_of_week" json:"days_of_week"`
	CostUSD             float64  `bun:"cost_usd,notnull" json:"cost_usd"`
	PictureURL          string   `bun:"picture_url,notnull" json:"picture_url"`
}

// EventCreate is the payload for creating an event. All fields are
// required; the server assigns the id.
type EventCreate struct {
	Title               string   `json:"title"`
	ShortDescription    string   `json:"short_description"`
	DetailedDescription string   `json:"detailed_description"`
	City                string   `json:"city"`
	DaysOfWeek          []string `json:"days_of_week"`
	CostUSD             float64  `json:"cost_usd"`
	PictureURL          string   `json:"picture_url"`
}

// EventUpdate is the payload for partial updates. Fields left nil are
// not touched; only the ones present in the request body are merged
// onto the stored record.
type EventUpdate struct {
	Title               *string   `json:"title,omitempty"`
	ShortDescription    *string   `json:"short_description,omitempty"`
	DetailedDescription *string   `json:"detailed_description,omitempty"`
	City                *string   `json:"city,omitempty"`
	DaysOfWeek          *[]string `json:"days_of_week,omitempty"`
	CostUSD             *float64  `json:"cost_usd,omitempty"`
	PictureURL          *string   `json:"picture_url,omitempty"`
}

// DeleteConfirmation is returned by DELETE /api/events/{id}.
type DeleteConfirmation struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// EventChange is the message published to Kafka after a successful
// mutation so that client caches can invalidate themselves.
type EventChange struct {
	EventID int64  `json:"event_id"`
	Action  string `json:"action"` // created, updated, deleted
}
