package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/query"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"` // validation failures
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s) [%s]: %v", context, c.GetString(requestIDKey), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
}

// respondError sends an error response with the given status code.
// Use the specific helpers (respondBadRequest, respondNotFound, etc.) when possible.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Message: message})
}

// storeMessages holds the user-facing text for repository failures of one
// resource. Empty fields fall back to generic messages.
type storeMessages struct {
	resource   string
	notFound   string
	conflict   string
	invalidRef string
}

// respondStoreError maps repository errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error, msgs storeMessages) {
	var referenced *database.ReferencedError

	switch {
	case errors.Is(err, database.ErrNotFound):
		respondNotFound(c, fallback(msgs.notFound, "Record not found."))
	case errors.As(err, &referenced):
		respondError(c, http.StatusConflict, fmt.Sprintf("%s is referenced by %d book(s) and cannot be deleted.",
			capitalize(referenced.Entity), referenced.Books))
	case errors.Is(err, database.ErrConflict):
		respondError(c, http.StatusConflict, fallback(msgs.conflict, "Record conflicts with an existing one."))
	case errors.Is(err, database.ErrInvalidReference):
		respondBadRequest(c, fallback(msgs.invalidRef, "Referenced record does not exist."))
	case errors.Is(err, database.ErrInvalidArgument):
		respondBadRequest(c, "invalid argument")
	default:
		respondInternalError(c, err, msgs.resource)
	}
}

func fallback(message, def string) string {
	if message == "" {
		return def
	}
	return message
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data and its location.
func respondCreated(c *gin.Context, location string, data any) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parsePage reads the page and pageSize query parameters. page defaults to
// 1 and pageSize to defaultSize.
// Responds with 400 and returns false when either is not a valid request.
func parsePage(c *gin.Context, defaultSize int) (query.Page, bool) {
	number, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		respondBadRequest(c, "page must be an integer")
		return query.Page{}, false
	}

	size := defaultSize
	if raw, ok := c.GetQuery("pageSize"); ok {
		size, err = strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "pageSize must be an integer")
			return query.Page{}, false
		}
	}

	page, err := query.NewPage(number, size)
	if err != nil {
		respondBadRequest(c, "pageSize must be at least 1")
		return query.Page{}, false
	}
	return page, true
}

// optionalQuery returns nil when the parameter is absent from the query string.
func optionalQuery(c *gin.Context, key string) *string {
	value, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &value
}
