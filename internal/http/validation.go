package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report JSON field names instead of Go struct field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	}
}

// bindJSON decodes and validates the request body into req. On failure it
// responds with 400 and returns false.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "validation failed",
			Errors:  fieldErrors(validationErrs),
		})
		return false
	}

	respondBadRequest(c, "invalid request body")
	return false
}

func fieldErrors(errs validator.ValidationErrors) []FieldError {
	result := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		result = append(result, FieldError{
			Field:   fe.Field(),
			Message: describeTag(fe),
		})
	}
	return result
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The %s field must be at most %s characters long.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid (%s).", fe.Field(), fe.Tag())
	}
}
