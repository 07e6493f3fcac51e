package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staysia/internal/app/dto"
	appbookings "staysia/internal/app/handlers/bookings"
	"staysia/internal/app/queries"
)

type BookingHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

func (h BookingHandler) List(c *gin.Context) {
	session, ok := requireSession(c, "/bookings")
	if !ok {
		return
	}
	if h.Queries == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "queries bus unavailable")
		return
	}
	query := appbookings.ListGuestBookingsQuery{GuestID: string(session.UserID)}
	result, err := queries.Ask[appbookings.ListGuestBookingsQuery, []dto.Booking](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if result == nil {
		result = []dto.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": result})
}

var _ BookingHTTP = BookingHandler{}
