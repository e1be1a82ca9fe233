package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/recipebook/backend/internal/apperror"
)

var kindStatus = map[apperror.Kind]int{
	apperror.KindUnauthenticated: http.StatusUnauthorized,
	apperror.KindForbidden:       http.StatusForbidden,
	apperror.KindValidation:      http.StatusUnprocessableEntity,
	apperror.KindNotFound:        http.StatusNotFound,
	apperror.KindConflict:        http.StatusConflict,
	apperror.KindStorage:         http.StatusBadRequest,
}

// respondError writes the JSON error shape for a classified error, or a bare
// 500 for anything unclassified.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status, ok := kindStatus[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := gin.H{"error": appErr.Message, "kind": string(appErr.Kind)}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.JSON(status, body)
}

// bindJSON decodes and validates the request body, converting validator
// failures into the 422 field-error shape.
func bindJSON(c *gin.Context, target interface{}) error {
	if err := c.ShouldBindJSON(target); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = validationMessage(fe)
			}
			return apperror.Validation("invalid request body", fields)
		}
		return apperror.Validation("malformed request body", nil)
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email address"
	case "min":
		return "value below minimum " + fe.Param()
	case "max":
		return "value above maximum " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "invalid value"
	}
}
