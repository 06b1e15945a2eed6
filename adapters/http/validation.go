package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// validationError carries the per-field messages for the 400 response body.
// It short-circuits before any use case runs.
type validationError struct {
	messages []string
}

func (e *validationError) Error() string {
	return "validation failed: " + strings.Join(e.messages, "; ")
}

func (e *validationError) ToJSON() gin.H {
	errs := make([]gin.H, len(e.messages))
	for i, m := range e.messages {
		errs[i] = gin.H{"msg": m}
	}
	return gin.H{"errors": errs}
}

// newValidationError translates binding failures into the field messages the
// API has always returned. fieldMsgs is keyed by lowercased struct field name.
func newValidationError(err error, fieldMsgs map[string]string) *validationError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &validationError{messages: []string{"Invalid request body"}}
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		if m, ok := fieldMsgs[strings.ToLower(fe.Field())]; ok {
			msgs = append(msgs, m)
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return &validationError{messages: msgs}
}
