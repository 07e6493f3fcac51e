package ginserver

import (
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"staysia/internal/app/autocomplete"
	appusers "staysia/internal/app/handlers/users"
	"staysia/internal/app/queries"
	"staysia/internal/domain/shared/money"
)

// LookupHandler serves the small read endpoints behind forms: email availability,
// location autocomplete and the currency table.
type LookupHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

func (h LookupHandler) CheckEmail(c *gin.Context) {
	if h.Queries == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "queries bus unavailable")
		return
	}
	result, err := queries.Ask[appusers.CheckEmailQuery, appusers.EmailAvailability](c.Request.Context(), h.Queries, appusers.CheckEmailQuery{Email: c.Query("email")})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Locations debounces per client. The client id falls back to the caller address.
func (h LookupHandler) Locations(c *gin.Context) {
	if h.Queries == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "queries bus unavailable")
		return
	}
	client := strings.TrimSpace(c.Query("client"))
	if client == "" {
		client = c.ClientIP()
	}
	query := autocomplete.SearchLocationsQuery{Client: client, Query: c.Query("q")}
	result, err := queries.Ask[autocomplete.SearchLocationsQuery, []autocomplete.Place](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if result == nil {
		result = []autocomplete.Place{}
	}
	c.JSON(http.StatusOK, gin.H{"results": result})
}

func (h LookupHandler) Currencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"base": money.BaseCurrency, "currencies": money.Currencies()})
}

var _ LookupHTTP = LookupHandler{}
