package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// ConflictMessage is returned when a write collides with a unique constraint.
const ConflictMessage = "Integrity constraint error: check that values in fields like 'email' are not already used"

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: "not_found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Error().Err(err).Str("context", context).Str("path", c.Request.URL.Path).Msg("Internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondServiceError maps domain errors to status codes.
func respondServiceError(c *gin.Context, err error, context string) {
	var verr *entities.ValidationError
	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		respondNotFound(c, "user")
	case errors.Is(err, entities.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, ErrorResponse{Error: ConflictMessage, Code: "conflict"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Code:    "validation_failed",
			Details: verr.Fields,
		})
	default:
		respondInternalError(c, err, context)
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseUUIDParam extracts a UUID from URL parameters, responding with 400
// when it is malformed.
func parseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return uuid.Nil, false
	}
	return id, true
}

// bindUUIDList reads a JSON array of UUIDs from the request body.
func bindUUIDList(c *gin.Context) ([]uuid.UUID, bool) {
	var ids []uuid.UUID
	if err := c.ShouldBindJSON(&ids); err != nil {
		respondBadRequest(c, "request body must be a JSON array of album ids")
		return nil, false
	}
	return ids, true
}

// readSearchText accepts the query either as raw text or as a JSON string.
func readSearchText(c *gin.Context) (string, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return "", err
	}
	if len(raw) > 0 && raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			return text, nil
		}
	}
	return string(raw), nil
}
