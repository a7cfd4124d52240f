package validators

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
)

var shared = New()

// ValidateStruct validates s and reports failing fields as
// "Field: <name>, Tag: <tag>" wrapped in apperr.ErrValidation.
func ValidateStruct(s interface{}) error {
	err := shared.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%w: %v", apperr.ErrValidation, messages)
	}
	return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
}
