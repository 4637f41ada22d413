package event_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lpt-event/internal/events"
	"lpt-event/internal/logger"
	"lpt-event/internal/models"
	"lpt-event/internal/utils"
)

const version = "1.0.0"

type EventService interface {
	ListEvents() ([]models.Event, error)
	GetEvent(id int64) (*models.Event, error)
	CreateEvent(payload models.EventCreate) (*models.Event, error)
	UpdateEvent(id int64, payload models.EventUpdate) (*models.Event, error)
	DeleteEvent(id int64) error
}

type Handler struct {
	EventService EventService
	Logger       *logger.Logger
}

func NewHandler(service EventService, log *logger.Logger) *Handler {
	return &Handler{EventService: service, Logger: log}
}

// RegisterRoutes mounts the event endpoints on the given router,
// normally under /api.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/version", h.Version)
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Post("/", h.CreateEvent)
		r.Get("/{eventId}", h.GetEvent)
		r.Put("/{eventId}", h.UpdateEvent)
		r.Delete("/{eventId}", h.DeleteEvent)
	})
}

func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"version": version})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	eventList, err := h.EventService.ListEvents()
	if err != nil {
		h.logError("Failed to list events", err)
		utils.Error(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	utils.JSON(w, http.StatusOK, eventList)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	event, err := h.EventService.GetEvent(id)
	if err != nil {
		h.renderError(w, id, err)
		return
	}
	utils.JSON(w, http.StatusOK, event)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var payload models.EventCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.EventService.CreateEvent(payload)
	if err != nil {
		h.renderError(w, 0, err)
		return
	}

	if h.Logger != nil {
		h.Logger.LogEvent("CREATE", event.ID, event.Title)
	}
	utils.JSON(w, http.StatusCreated, event)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	var payload models.EventUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.EventService.UpdateEvent(id, payload)
	if err != nil {
		h.renderError(w, id, err)
		return
	}

	if h.Logger != nil {
		h.Logger.LogEvent("UPDATE", id, event.Title)
	}
	utils.JSON(w, http.StatusOK, event)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	if err := h.EventService.DeleteEvent(id); err != nil {
		h.renderError(w, id, err)
		return
	}

	if h.Logger != nil {
		h.Logger.LogEvent("DELETE", id, "removed")
	}
	utils.JSON(w, http.StatusOK, models.DeleteConfirmation{
		OK:      true,
		Message: fmt.Sprintf("Event %d deleted successfully", id),
	})
}

// eventID parses the {eventId} URL parameter. Writes the error response
// itself when the parameter is not an integer.
func (h *Handler) eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "eventId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.Error(w, http.StatusUnprocessableEntity, "eventId must be an integer")
		return 0, false
	}
	return id, true
}

func renderError(w http.ResponseWriter, log *logger.Logger, err error) {
	var validationErr *events.ValidationError
	switch {
	case errors.Is(err, events.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "Event not found")
	case errors.As(err, &validationErr):
		utils.Error(w, http.StatusUnprocessableEntity, validationErr.Error())
	default:
		if log != nil {
			log.Error("API", fmt.Sprintf("Unexpected error: %v", err))
		}
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) renderError(w http.ResponseWriter, id int64, err error) {
	renderError(w, h.Logger, err)
}

func (h *Handler) logError(message string, err error) {
	if h.Logger != nil {
		h.Logger.Error("API", fmt.Sprintf("%s: %v", message, err))
	}
}
