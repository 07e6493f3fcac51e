package ginserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"staysia/internal/app/commands"
	"staysia/internal/app/dto"
	apppricing "staysia/internal/app/handlers/pricing"
	appproperties "staysia/internal/app/handlers/properties"
	"staysia/internal/app/queries"
	domainproperties "staysia/internal/domain/properties"
	"staysia/internal/domain/shared/daterange"
)

const maxPropertyImageSizeBytes int64 = 10 * 1024 * 1024

type PropertyHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

// List serves the catalog, or a single property when ?id= is present.
func (h PropertyHandler) List(c *gin.Context) {
	if h.Queries == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "queries bus unavailable")
		return
	}
	if raw, ok := c.GetQuery("id"); ok {
		id, err := parsePropertyID(raw)
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		result, err := queries.Ask[appproperties.GetPropertyQuery, dto.Property](c.Request.Context(), h.Queries, appproperties.GetPropertyQuery{ID: id})
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	query := appproperties.SearchPropertiesQuery{
		City:   c.Query("city"),
		Type:   c.Query("type"),
		Guests: parseInt(c.Query("guests")),
		Pets:   parseOptionalBool(c.Query("pets")),
		Sort:   c.Query("sort_by"),
		Limit:  parseIntWithDefault(c.Query("limit"), domainproperties.DefaultSearchLimit),
		Offset: parseInt(c.Query("offset")),
	}
	result, err := queries.Ask[appproperties.SearchPropertiesQuery, []dto.Property](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if result == nil {
		result = []dto.Property{}
	}
	c.JSON(http.StatusOK, result)
}

type createPropertyRequest struct {
	Name            string          `json:"name"`
	City            string          `json:"city"`
	Area            string          `json:"area"`
	Type            string          `json:"type"`
	ImageURL        string          `json:"image_url"`
	Price           json.RawMessage `json:"price"`
	Rating          json.RawMessage `json:"rating"`
	Nights          json.RawMessage `json:"nights"`
	IsGuestFavorite json.RawMessage `json:"is_guest_favorite"`
	Description     string          `json:"description"`
	Address         string          `json:"address"`
	Country         string          `json:"country"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       int             `json:"bathrooms"`
	MaxGuests       int             `json:"max_guests"`
	PetsAllowed     bool            `json:"pets_allowed"`
	CheckInTime     string          `json:"check_in_time"`
	CheckOutTime    string          `json:"check_out_time"`
	Amenities       []string        `json:"amenities"`
}

// params maps the payload onto CreateParams. Malformed numbers become out-of-range values so
// NewProperty reports them with its usual codes and ordering.
func (r createPropertyRequest) params() domainproperties.CreateParams {
	params := domainproperties.CreateParams{
		Name:            r.Name,
		City:            r.City,
		Area:            r.Area,
		Type:            r.Type,
		ImageURL:        r.ImageURL,
		IsGuestFavorite: looseTrue(r.IsGuestFavorite),
		Description:     r.Description,
		Address:         r.Address,
		Country:         r.Country,
		Bedrooms:        r.Bedrooms,
		Bathrooms:       r.Bathrooms,
		MaxGuests:       r.MaxGuests,
		PetsAllowed:     r.PetsAllowed,
		CheckInTime:     r.CheckInTime,
		CheckOutTime:    r.CheckOutTime,
		Amenities:       cleanStrings(r.Amenities),
	}
	if price, ok := looseNumber(r.Price); !ok {
		params.Price = new(int64)
	} else if price != nil {
		v := int64(math.Trunc(*price))
		params.Price = &v
	}
	if rating, ok := looseNumber(r.Rating); !ok {
		invalid := -1.0
		params.Rating = &invalid
	} else {
		params.Rating = rating
	}
	if nights, ok := looseNumber(r.Nights); !ok {
		params.Nights = new(int)
	} else if nights != nil {
		v := int(math.Trunc(*nights))
		params.Nights = &v
	}
	return params
}

func (h PropertyHandler) Create(c *gin.Context) {
	if h.Commands == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "commands bus unavailable")
		return
	}
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	cmd := appproperties.CreatePropertyCommand{Params: req.params()}
	result, err := commands.Dispatch[appproperties.CreatePropertyCommand, dto.Property](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/v1/properties/%d", result.ID))
	c.JSON(http.StatusCreated, result)
}

type toggleFavoriteRequest struct {
	ID json.RawMessage `json:"id"`
}

func (h PropertyHandler) ToggleFavorite(c *gin.Context) {
	if h.Commands == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "commands bus unavailable")
		return
	}
	var req toggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	raw, ok := looseNumber(req.ID)
	if !ok || raw == nil || *raw <= 0 {
		respondError(c, h.Logger, domainproperties.ErrInvalidID)
		return
	}
	cmd := appproperties.ToggleFavoriteCommand{ID: domainproperties.PropertyID(int64(*raw))}
	result, err := commands.Dispatch[appproperties.ToggleFavoriteCommand, dto.Property](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PropertyHandler) Details(c *gin.Context) {
	if h.Queries == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "queries bus unavailable")
		return
	}
	id, err := parsePropertyID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	result, err := queries.Ask[appproperties.GetPropertyDetailsQuery, dto.PropertyDetails](c.Request.Context(), h.Queries, appproperties.GetPropertyDetailsQuery{ID: id})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Pricing answers the pricing window used by calendar sessions.
func (h PropertyHandler) Pricing(c *gin.Context) {
	if h.Queries == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "queries bus unavailable")
		return
	}
	id, err := parsePropertyID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	from, err := parseOptionalDay(c.Query("from"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	to, err := parseOptionalDay(c.Query("to"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	query := apppricing.GetPricingQuery{PropertyID: id, From: from, To: to}
	result, err := queries.Ask[apppricing.GetPricingQuery, []dto.PricingEntry](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if result == nil {
		result = []dto.PricingEntry{}
	}
	c.JSON(http.StatusOK, result)
}

func (h PropertyHandler) UploadImage(c *gin.Context) {
	if h.Commands == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "commands bus unavailable")
		return
	}
	id, err := parsePropertyID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeError(c, http.StatusBadRequest, CodeImageRequired, "file is required")
		return
	}
	if fileHeader.Size <= 0 {
		writeError(c, http.StatusBadRequest, CodeImageRequired, "file is empty")
		return
	}
	if fileHeader.Size > maxPropertyImageSizeBytes {
		writeError(c, http.StatusRequestEntityTooLarge, CodeInvalidRequest, fmt.Sprintf("file too large (max %d MB)", maxPropertyImageSizeBytes/1024/1024))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPropertyImageSizeBytes+1))
	if err != nil {
		respondError(c, h.Logger, fmt.Errorf("read upload: %w", err))
		return
	}
	if int64(len(data)) > maxPropertyImageSizeBytes {
		writeError(c, http.StatusRequestEntityTooLarge, CodeInvalidRequest, fmt.Sprintf("file too large (max %d MB)", maxPropertyImageSizeBytes/1024/1024))
		return
	}
	contentType := strings.TrimSpace(fileHeader.Header.Get("Content-Type"))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	cmd := appproperties.AddPropertyImageCommand{
		PropertyID:  id,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Reader:      bytes.NewReader(data),
	}
	result, err := commands.Dispatch[appproperties.AddPropertyImageCommand, dto.Property](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h PropertyHandler) Sections(c *gin.Context) {
	if h.Queries == nil {
		writeError(c, http.StatusServiceUnavailable, CodeUnavailable, "queries bus unavailable")
		return
	}
	result, err := queries.Ask[appproperties.HomeSectionsQuery, []dto.Section](c.Request.Context(), h.Queries, appproperties.HomeSectionsQuery{City: c.Query("city")})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if result == nil {
		result = []dto.Section{}
	}
	c.JSON(http.StatusOK, gin.H{"sections": result})
}

var _ PropertyHTTP = PropertyHandler{}

func parsePropertyID(raw string) (domainproperties.PropertyID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainproperties.ErrInvalidID
	}
	return domainproperties.PropertyID(id), nil
}

func parseOptionalDay(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return daterange.ParseDay(raw)
}

func parseOptionalBool(raw string) *bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// looseNumber accepts JSON numbers and numeric strings. Absent or null values yield (nil, true).
func looseNumber(raw json.RawMessage) (*float64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, true
	}
	var num float64
	if err := json.Unmarshal(trimmed, &num); err == nil {
		return &num, true
	}
	var str string
	if err := json.Unmarshal(trimmed, &str); err != nil {
		return nil, false
	}
	num, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return nil, false
	}
	return &num, true
}

// looseTrue reports true for JSON true or the number 1.
func looseTrue(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "true", "1":
		return true
	}
	return false
}

func cleanStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseInt(raw string) int {
	value, _ := strconv.Atoi(strings.TrimSpace(raw))
	if value < 0 {
		return 0
	}
	return value
}

func parseIntWithDefault(raw string, fallback int) int {
	value := parseInt(raw)
	if value == 0 {
		return fallback
	}
	return value
}
