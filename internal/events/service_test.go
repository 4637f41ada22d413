package events_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lpt-event/internal/events"
	"lpt-event/internal/models"
)

// MockEventDBLayer is a mock implementation of the EventDBLayer interface
type MockEventDBLayer struct {
	mock.Mock
}

func (m *MockEventDBLayer) ListEvents() ([]models.Event, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventDBLayer) GetEventByID(id int64) (*models.Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventDBLayer) CreateEvent(event *models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventDBLayer) UpdateEvent(event models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventDBLayer) DeleteEvent(id int64) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

// recordingPublisher captures change notifications for assertions.
type recordingPublisher struct {
	changes []models.EventChange
}

func (p *recordingPublisher) PublishEventChange(change models.EventChange) error {
	p.changes = append(p.changes, change)
	return nil
}

func validCreate() models.EventCreate {
	return models.EventCreate{
		Title:               "Demo",
		ShortDescription:    "d",
		DetailedDescription: "dd",
		City:                "NYC",
		DaysOfWeek:          []string{"Monday"},
		CostUSD:             0,
		PictureURL:          "https://x.test/a.jpg",
	}
}

func TestCreateEvent(t *testing.T) {
	mockDB := new(MockEventDBLayer)
	publisher := &recordingPublisher{}
	svc := events.NewEventService(mockDB, publisher, nil)

	mockDB.On("CreateEvent", mock.AnythingOfType("*models.Event")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Event).ID = 42
	}).Return(nil)

	payload := validCreate()
	event, err := svc.CreateEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, int64(42), event.ID)
	assert.Equal(t, payload.Title, event.Title)
	assert.Equal(t, payload.ShortDescription, event.ShortDescription)
	assert.Equal(t, payload.DetailedDescription, event.DetailedDescription)
	assert.Equal(t, payload.City, event.City)
	assert.Equal(t, payload.DaysOfWeek, event.DaysOfWeek)
	assert.Equal(t, payload.CostUSD, event.CostUSD)
	assert.Equal(t, payload.PictureURL, event.PictureURL)

	require.Len(t, publisher.changes, 1)
	assert.Equal(t, "created", publisher.changes[0].Action)
	assert.Equal(t, int64(42), publisher.changes[0].EventID)

	mockDB.AssertExpectations(t)
}

func TestCreateEventValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.EventCreate)
		field  string
	}{
		{"empty title", func(p *models.EventCreate) { p.Title = "  " }, "title"},
		{"empty short description", func(p *models.EventCreate) { p.ShortDescription = "" }, "short_description"},
		{"empty detailed description", func(p *models.EventCreate) { p.DetailedDescription = "" }, "detailed_description"},
		{"empty city", func(p *models.EventCreate) { p.City = "" }, "city"},
		{"no days", func(p *models.EventCreate) { p.DaysOfWeek = []string{} }, "days_of_week"},
		{"unknown day", func(p *models.EventCreate) { p.DaysOfWeek = []string{"Funday"} }, "days_of_week"},
		{"duplicate day", func(p *models.EventCreate) { p.DaysOfWeek = []string{"Monday", "Monday"} }, "days_of_week"},
		{"negative cost", func(p *models.EventCreate) { p.CostUSD = -1 }, "cost_usd"},
		{"relative url", func(p *models.EventCreate) { p.PictureURL = "/a.jpg" }, "picture_url"},
		{"bad scheme", func(p *models.EventCreate) { p.PictureURL = "ftp://x.test/a.jpg" }, "picture_url"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB := new(MockEventDBLayer)
			svc := events.NewEventService(mockDB, nil, nil)

			payload := validCreate()
			tc.mutate(&payload)

			_, err := svc.CreateEvent(payload)
			var validationErr *events.ValidationError
			require.True(t, errors.As(err, &validationErr), "expected a validation error, got %v", err)
			assert.Equal(t, tc.field, validationErr.Field)

			mockDB.AssertNotCalled(t, "CreateEvent", mock.Anything)
		})
	}
}

func TestGetEventNotFound(t *testing.T) {
	mockDB := new(MockEventDBLayer)
	svc := events.NewEventService(mockDB, nil, nil)

	mockDB.On("GetEventByID", int64(9999)).Return(nil, sql.ErrNoRows)

	_, err := svc.GetEvent(9999)
	assert.True(t, errors.Is(err, events.ErrNotFound))
}

func TestUpdateEventPartial(t *testing.T) {
	mockDB := new(MockEventDBLayer)
	publisher := &recordingPublisher{}
	svc := events.NewEventService(mockDB, publisher, nil)

	existing := models.Event{
		ID:                  7,
		Title:               "Demo",
		ShortDescription:    "d",
		DetailedDescription: "dd",
		City:                "NYC",
		DaysOfWeek:          []string{"Monday"},
		CostUSD:             10,
		PictureURL:          "https://x.test/a.jpg",
	}
	mockDB.On("GetEventByID", int64(7)).Return(&existing, nil)
	mockDB.On("UpdateEvent", mock.MatchedBy(func(e models.Event) bool {
		return e.City == "Austin" && e.Title == "Demo" && e.CostUSD == 10
	})).Return(nil)

	city := "Austin"
	updated, err := svc.UpdateEvent(7, models.EventUpdate{City: &city})
	require.NoError(t, err)

	assert.Equal(t, "Austin", updated.City)
	assert.Equal(t, existing.Title, updated.Title)
	assert.Equal(t, existing.ShortDescription, updated.ShortDescription)
	assert.Equal(t, existing.DaysOfWeek, updated.DaysOfWeek)
	assert.Equal(t, existing.CostUSD, updated.CostUSD)
	assert.Equal(t, existing.PictureURL, updated.PictureURL)

	require.Len(t, publisher.changes, 1)
	assert.Equal(t, "updated", publisher.changes[0].Action)

	mockDB.AssertExpectations(t)
}

func TestUpdateEventNotFound(t *testing.T) {
	mockDB := new(MockEventDBLayer)
	svc := events.NewEventService(mockDB, nil, nil)

	mockDB.On("GetEventByID", int64(9999)).Return(nil, sql.ErrNoRows)

	city := "X"
	_, err := svc.UpdateEvent(9999, models.EventUpdate{City: &city})
	assert.True(t, errors.Is(err, events.ErrNotFound))

	mockDB.AssertNotCalled(t, "UpdateEvent", mock.Anything)
	mockDB.AssertNotCalled(t, "CreateEvent", mock.Anything)
}

func TestUpdateEventValidation(t *testing.T) {
	mockDB := new(MockEventDBLayer)
	svc := events.NewEventService(mockDB, nil, nil)

	existing := models.Event{
		ID:                  7,
		Title:               "Demo",
		ShortDescription:    "d",
		DetailedDescription: "dd",
		City:                "NYC",
		DaysOfWeek:          []string{"Monday"},
		CostUSD:             10,
		PictureURL:          "https://x.test/a.jpg",
	}
	mockDB.On("GetEventByID", int64(7)).Return(&existing, nil)

	cost := -5.0
	_, err := svc.UpdateEvent(7, models.EventUpdate{CostUSD: &cost})
	var validationErr *events.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "cost_usd", validationErr.Field)

	empty := []string{}
	_, err = svc.UpdateEvent(7, models.EventUpdate{DaysOfWeek: &empty})
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "days_of_week", validationErr.Field)

	mockDB.AssertNotCalled(t, "UpdateEvent", mock.Anything)
}

func TestDeleteEvent(t *testing.T) {
	mockDB := new(MockEventDBLayer)
	publisher := &recordingPublisher{}
	svc := events.NewEventService(mockDB, publisher, nil)

	mockDB.On("DeleteEvent", int64(7)).Return(int64(1), nil)
	require.NoError(t, svc.DeleteEvent(7))

	require.Len(t, publisher.changes, 1)
	assert.Equal(t, "deleted", publisher.changes[0].Action)

	mockDB.On("DeleteEvent", int64(9999)).Return(int64(0), nil)
	err := svc.DeleteEvent(9999)
	assert.True(t, errors.Is(err, events.ErrNotFound))
	assert.Len(t, publisher.changes, 1, "a failed delete must not publish a change")
}
