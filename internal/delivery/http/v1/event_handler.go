package v1

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventUC domain.EventUsecase
}

// NewEventHandler registers event routes. GET /events/:id doubles as the
// listing lookup used by peer services (200 exists, 404 absent).
func NewEventHandler(r *gin.RouterGroup, writes gin.HandlerFunc, eventUC domain.EventUsecase) {
	handler := &EventHandler{eventUC: eventUC}

	events := r.Group("/events")
	{
		events.POST("", writes, handler.Create)
		events.GET("", handler.List)
		events.GET("/search/title", handler.SearchByTitle)
		events.GET("/organizer/:organizerId", handler.ListByOrganizer)
		events.GET("/:id", handler.Get)
		events.PUT("/:id", writes, handler.Update)
		events.DELETE("/:id", writes, handler.Delete)
	}
}

// EventRequest is the payload for creating or replacing an event. Dates accept
// RFC 3339 or a zone-less local timestamp read as UTC.
type EventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartDate   *EventTime `json:"start_date" swaggertype:"string" example:"2026-11-01T09:00:00Z"`
	EndDate     *EventTime `json:"end_date" swaggertype:"string" example:"2026-11-01T17:00:00Z"`
	Capacity    *int       `json:"capacity"`
	OrganizerID string     `json:"organizer_id"`
}

// EventTime decodes the date formats clients send for events
type EventTime struct {
	time.Time
}

var eventTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"}

func (t *EventTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	for _, layout := range eventTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return &time.ParseError{Layout: time.RFC3339, Value: s, Message: ": unsupported date format"}
}

func (r *EventRequest) toDomain() *domain.Event {
	event := &domain.Event{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Capacity:    r.Capacity,
		OrganizerID: r.OrganizerID,
	}
	if r.StartDate != nil {
		start := r.StartDate.Time
		event.StartDate = &start
	}
	if r.EndDate != nil {
		end := r.EndDate.Time
		event.EndDate = &end
	}
	return event
}

// CreateEvent godoc
// @Summary      Create an event
// @Description  The organizer must hold the EVENT_MANAGER role in the identity service
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      EventRequest  true  "Event data"
// @Success      201   {object}  response.Response{data=domain.Event}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	event, err := h.eventUC.CreateEvent(c.Request.Context(), req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Event created", event)
}

// ListEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Event}
// @Router       /events [get]
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventUC.ListEvents(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Events", events)
}

// GetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  response.Response{data=domain.Event}
// @Failure      404  {object}  response.Response
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventUC.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Event", event)
}

// ListByOrganizer godoc
// @Summary      List events of an organizer
// @Tags         events
// @Produce      json
// @Param        organizerId  path      string  true  "Organizer ID"
// @Success      200          {object}  response.Response{data=[]domain.Event}
// @Router       /events/organizer/{organizerId} [get]
func (h *EventHandler) ListByOrganizer(c *gin.Context) {
	events, err := h.eventUC.ListByOrganizer(c.Request.Context(), c.Param("organizerId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Events for organizer", events)
}

// SearchEventsByTitle godoc
// @Summary      Search events by title
// @Description  Case-insensitive substring match
// @Tags         events
// @Produce      json
// @Param        title  query     string  true  "Title fragment"
// @Success      200    {object}  response.Response{data=[]domain.Event}
// @Failure      400    {object}  response.Response
// @Router       /events/search/title [get]
func (h *EventHandler) SearchByTitle(c *gin.Context) {
	events, err := h.eventUC.SearchByTitle(c.Request.Context(), c.Query("title"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Matching events", events)
}

// UpdateEvent godoc
// @Summary      Replace an event
// @Description  Replaces every mutable field. The organizer in the body is re-authorized; the stored organizer is kept.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Event ID"
// @Param        body  body      EventRequest  true  "Event data"
// @Success      200   {object}  response.Response{data=domain.Event}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	event, err := h.eventUC.UpdateEvent(c.Request.Context(), c.Param("id"), req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Event updated", event)
}

// DeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Param        id   path  string  true  "Event ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.eventUC.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.NoContent(c)
}
