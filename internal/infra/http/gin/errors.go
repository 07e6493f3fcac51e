package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staysia/internal/app/autocomplete"
	appcalendar "staysia/internal/app/handlers/calendar"
	apppricing "staysia/internal/app/handlers/pricing"
	appproperties "staysia/internal/app/handlers/properties"
	"staysia/internal/app/middleware"
	domainauth "staysia/internal/domain/auth"
	domainbooking "staysia/internal/domain/booking"
	domaincalendar "staysia/internal/domain/calendar"
	domainproperties "staysia/internal/domain/properties"
	"staysia/internal/domain/shared/daterange"
	"staysia/internal/domain/shared/money"
	domainuser "staysia/internal/domain/user"
	"staysia/internal/infra/cache/redis"
	"staysia/internal/infra/storage/s3"
	"staysia/internal/infra/validation"
)

const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInternal            = "INTERNAL"
	CodeUnavailable         = "UNAVAILABLE"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeHostKeyRequired     = "HOST_KEY_REQUIRED"
	CodeHostKeyInvalid      = "HOST_KEY_INVALID"
	CodeMissingEmail        = "MISSING_EMAIL"
	CodeInvalidEmail        = "INVALID_EMAIL"
	CodeInvalidCurrency     = "INVALID_CURRENCY"
	CodeInvalidDate         = "INVALID_DATE"
	CodeInvalidMonth        = "INVALID_MONTH"
	CodeInvalidWindow       = "INVALID_WINDOW"
	CodeInvalidGuests       = "INVALID_GUESTS"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeInvalidSessionID    = "INVALID_SESSION_ID"
	CodeSelectionIncomplete = "SELECTION_INCOMPLETE"
	CodeSelectionExpired    = "SELECTION_EXPIRED"
	CodeSoldOut             = "SOLD_OUT"
	CodeConflict            = "CONFLICT"
	CodeSuperseded          = "SUPERSEDED"
	CodeImageRequired       = "IMAGE_REQUIRED"
	CodeUnsupportedMedia    = "UNSUPPORTED_MEDIA_TYPE"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domainproperties.ErrInvalidID, http.StatusBadRequest, domainproperties.CodeInvalidID},
	{domainproperties.ErrNotFound, http.StatusNotFound, domainproperties.CodeNotFound},
	{validation.ErrInvalid, http.StatusBadRequest, CodeInvalidRequest},
	{domainuser.ErrEmailRequired, http.StatusBadRequest, CodeMissingEmail},
	{domainuser.ErrInvalidEmail, http.StatusBadRequest, CodeInvalidEmail},
	{money.ErrInvalidCurrency, http.StatusBadRequest, CodeInvalidCurrency},
	{daterange.ErrInvalidDay, http.StatusBadRequest, CodeInvalidDate},
	{domaincalendar.ErrInvalidMonth, http.StatusBadRequest, CodeInvalidMonth},
	{apppricing.ErrInvalidWindow, http.StatusBadRequest, CodeInvalidWindow},
	{domainbooking.ErrInvalidGuests, http.StatusBadRequest, CodeInvalidGuests},
	{domaincalendar.ErrInvalidSessionID, http.StatusBadRequest, CodeInvalidSessionID},
	{domaincalendar.ErrSessionNotFound, http.StatusNotFound, CodeSessionNotFound},
	{domaincalendar.ErrSelectionIncomplete, http.StatusConflict, CodeSelectionIncomplete},
	{domaincalendar.ErrSoldOutInRange, http.StatusConflict, CodeSoldOut},
	{appcalendar.ErrSelectionExpired, http.StatusConflict, CodeSelectionExpired},
	{redis.ErrSessionConflict, http.StatusConflict, CodeConflict},
	{autocomplete.ErrSuperseded, http.StatusConflict, CodeSuperseded},
	{middleware.ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated},
	{domainbooking.ErrGuestRequired, http.StatusUnauthorized, CodeUnauthenticated},
	{domainauth.ErrTokenRequired, http.StatusUnauthorized, CodeUnauthenticated},
	{domainauth.ErrInvalidToken, http.StatusUnauthorized, CodeUnauthenticated},
	{domainauth.ErrTokenExpired, http.StatusUnauthorized, CodeUnauthenticated},
	{appproperties.ErrImageRequired, http.StatusBadRequest, CodeImageRequired},
	{s3.ErrUnsupportedContentType, http.StatusUnsupportedMediaType, CodeUnsupportedMedia},
	{appproperties.ErrImageStorageUnavailable, http.StatusServiceUnavailable, CodeUnavailable},
}

// classify maps an application error onto an HTTP status and a stable error code.
func classify(err error) (int, string) {
	var coded *domainproperties.CodedError
	if errors.As(err, &coded) {
		return http.StatusBadRequest, coded.Code
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

func writeError(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

// respondError writes the mapped error. Internal failures are logged and never echoed to the client.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status, code := classify(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("request failed", "path", c.FullPath(), "status", status, "error", err, "request_id", c.GetString("request_id"))
		if status == http.StatusInternalServerError {
			message = "internal error"
		}
	}
	writeError(c, status, code, message)
}
