package events

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"lpt-event/internal/logger"
	"lpt-event/internal/models"
)

// ErrNotFound is returned when no event exists for the requested id.
var ErrNotFound = errors.New("event not found")

// ValidationError reports which field failed validation. No record that
// would trip one of these is ever handed to the DB layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var weekdays = map[string]bool{
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
	"Saturday":  true,
	"Sunday":    true,
}

type EventDBLayer interface {
	ListEvents() ([]models.Event, error)
	GetEventByID(id int64) (*models.Event, error)
	CreateEvent(event *models.Event) error
	UpdateEvent(event models.Event) error
	DeleteEvent(id int64) (int64, error)
}

// ChangePublisher streams change notifications after successful
// mutations. Publishing is best effort; a broker outage never fails
// the mutation itself.
type ChangePublisher interface {
	PublishEventChange(change models.EventChange) error
}

type EventService struct {
	DB        EventDBLayer
	Publisher ChangePublisher
	Logger    *logger.Logger
}

func NewEventService(db EventDBLayer, publisher ChangePublisher, log *logger.Logger) *EventService {
	return &EventService{DB: db, Publisher: publisher, Logger: log}
}

func (s *EventService) ListEvents() ([]models.Event, error) {
	events, err := s.DB.ListEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *EventService) GetEvent(id int64) (*models.Event, error) {
	event, err := s.DB.GetEventByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch event %d: %w", id, err)
	}
	return event, nil
}

func (s *EventService) CreateEvent(payload models.EventCreate) (*models.Event, error) {
	event := models.Event{
		Title:               payload.Title,
		ShortDescription:    payload.ShortDescription,
		DetailedDescription: payload.DetailedDescription,
		City:                payload.City,
		DaysOfWeek:          payload.DaysOfWeek,
		CostUSD:             payload.CostUSD,
		PictureURL:          payload.PictureURL,
	}

	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.DB.CreateEvent(&event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.publish(models.EventChange{EventID: event.ID, Action: "created"})
	return &event, nil
}

// UpdateEvent merges the provided fields onto the stored record and
// re-validates the merged result before persisting.
func (s *EventService) UpdateEvent(id int64, payload models.EventUpdate) (*models.Event, error) {
	event, err := s.GetEvent(id)
	if err != nil {
		return nil, err
	}

	merged := *event
	if payload.Title != nil {
		merged.Title = *payload.Title
	}
	if payload.ShortDescription != nil {
		merged.ShortDescription = *payload.ShortDescription
	}
	if payload.DetailedDescription != nil {
		merged.DetailedDescription = *payload.DetailedDescription
	}
	if payload.City != nil {
		merged.City = *payload.City
	}
	if payload.DaysOfWeek != nil {
		merged.DaysOfWeek = *payload.DaysOfWeek
	}
	if payload.CostUSD != nil {
		merged.CostUSD = *payload.CostUSD
	}
	if payload.PictureURL != nil {
		merged.PictureURL = *payload.PictureURL
	}

	if err := validateEvent(merged); err != nil {
		return nil, err
	}

	if err := s.DB.UpdateEvent(merged); err != nil {
		return nil, fmt.Errorf("failed to update event %d: %w", id, err)
	}

	s.publish(models.EventChange{EventID: id, Action: "updated"})
	return &merged, nil
}

func (s *EventService) DeleteEvent(id int64) error {
	affected, err := s.DB.DeleteEvent(id)
	if err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.publish(models.EventChange{EventID: id, Action: "deleted"})
	return nil
}

func (s *EventService) publish(change models.EventChange) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishEventChange(change); err != nil && s.Logger != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish %s change for event %d: %v", change.Action, change.EventID, err))
	}
}

func validateEvent(event models.Event) error {
	if strings.TrimSpace(event.Title) == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if strings.TrimSpace(event.ShortDescription) == "" {
		return &ValidationError{Field: "short_description", Message: "must not be empty"}
	}
	if strings.TrimSpace(event.DetailedDescription) == "" {
		return &ValidationError{Field: "detailed_description", Message: "must not be empty"}
	}
	if strings.TrimSpace(event.City) == "" {
		return &ValidationError{Field: "city", Message: "must not be empty"}
	}
	if len(event.DaysOfWeek) == 0 {
		return &ValidationError{Field: "days_of_week", Message: "must contain at least one day"}
	}
	seen := make(map[string]bool, len(event.DaysOfWeek))
	for _, day := range event.DaysOfWeek {
		if !weekdays[day] {
			return &ValidationError{Field: "days_of_week", Message: fmt.Sprintf("%q is not a valid weekday", day)}
		}
		if seen[day] {
			return &ValidationError{Field: "days_of_week", Message: fmt.Sprintf("%q appears more than once", day)}
		}
		seen[day] = true
	}
	if event.CostUSD < 0 {
		return &ValidationError{Field: "cost_usd", Message: "must be non-negative"}
	}
	if err := validatePictureURL(event.PictureURL); err != nil {
		return err
	}
	return nil
}

func validatePictureURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "picture_url", Message: "must be a valid URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "picture_url", Message: "must use http or https"}
	}
	return nil
}
