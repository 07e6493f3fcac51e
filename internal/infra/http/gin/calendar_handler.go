package ginserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"staysia/internal/app/commands"
	"staysia/internal/app/dto"
	appcalendar "staysia/internal/app/handlers/calendar"
	"staysia/internal/app/queries"
	"staysia/internal/domain/shared/daterange"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// CalendarHandler exposes the availability calendar of a property as a server-side session.
type CalendarHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type openSessionRequest struct {
	PropertyID int64  `json:"property_id"`
	Currency   string `json:"currency"`
	Locale     string `json:"locale"`
}

func (h CalendarHandler) Open(c *gin.Context) {
	if h.Commands == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "commands bus unavailable")
		return
	}
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	cmd := appcalendar.OpenSessionCommand{
		PropertyID: req.PropertyID,
		Currency:   strings.TrimSpace(req.Currency),
		Locale:     strings.TrimSpace(req.Locale),
	}
	result, err := commands.Dispatch[appcalendar.OpenSessionCommand, dto.CalendarSession](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Header("Location", "/api/v1/calendar/sessions/"+result.ID)
	c.JSON(http.StatusCreated, result)
}

func (h CalendarHandler) Month(c *gin.Context) {
	if h.Queries == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "queries bus unavailable")
		return
	}
	query := appcalendar.GetMonthQuery{
		SessionID: c.Param("id"),
		Month:     strings.TrimSpace(c.Query("month")),
	}
	result, err := queries.Ask[appcalendar.GetMonthQuery, dto.CalendarMonth](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type selectDateRequest struct {
	Date string `json:"date"`
}

func (h CalendarHandler) Select(c *gin.Context) {
	if h.Commands == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "commands bus unavailable")
		return
	}
	var req selectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	day, err := daterange.ParseDay(req.Date)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cmd := appcalendar.SelectDateCommand{SessionID: c.Param("id"), Date: day}
	result, err := commands.Dispatch[appcalendar.SelectDateCommand, dto.SelectDateResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) Clear(c *gin.Context) {
	if h.Commands == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "commands bus unavailable")
		return
	}
	cmd := appcalendar.ClearSelectionCommand{SessionID: c.Param("id")}
	result, err := commands.Dispatch[appcalendar.ClearSelectionCommand, dto.CalendarSession](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type confirmSelectionRequest struct {
	Guests int `json:"guests"`
}

// Confirm books the selected stay for the signed-in guest.
func (h CalendarHandler) Confirm(c *gin.Context) {
	sessionID := c.Param("id")
	session, ok := requireSession(c, "/properties")
	if !ok {
		return
	}
	if h.Commands == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "commands bus unavailable")
		return
	}
	// The body is optional; an empty one (chunked or not) keeps the defaults.
	var req confirmSelectionRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
			return
		}
	}
	cmd := appcalendar.ConfirmSelectionCommand{
		SessionID:       sessionID,
		GuestID:         string(session.UserID),
		Guests:          req.Guests,
		IdempotencyKeyV: scopedIdempotencyKey(string(session.UserID), c.GetHeader(IdempotencyKeyHeader)),
	}
	result, err := commands.Dispatch[appcalendar.ConfirmSelectionCommand, dto.Booking](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

var _ CalendarHTTP = CalendarHandler{}

// scopedIdempotencyKey prefixes client keys with the guest so two guests never share a replay.
func scopedIdempotencyKey(guestID, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return guestID + ":" + key
}
