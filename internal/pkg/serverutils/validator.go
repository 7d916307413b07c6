package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"ai-querychat-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks the validate tags of req and turns the first
// failures into a single readable ValidationError.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation("ValidateRequest", err.Error())
	}

	missing := make([]string, 0, len(verrs))
	var others []string
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			missing = append(missing, field)
		case "email":
			others = append(others, fmt.Sprintf("%s must be a valid email address", field))
		default:
			others = append(others, fmt.Sprintf("%s is invalid", field))
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, joinFields(missing)+" required")
	}
	parts = append(parts, others...)
	return apperror.Validation("ValidateRequest", capitalize(strings.Join(parts, "; ")))
}

func joinFields(fields []string) string {
	if len(fields) == 1 {
		return fields[0] + " is"
	}
	return strings.Join(fields[:len(fields)-1], ", ") + " and " + fields[len(fields)-1] + " are"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
