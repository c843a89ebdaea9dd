package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage turns a gin binding failure into a readable message.
// Validator failures list the offending fields and rules instead of dumping
// the struct path.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request format: " + err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		parts[i] = fmt.Sprintf("field %s failed on the %q rule", fe.Field(), fe.Tag())
	}
	return "Invalid request: " + strings.Join(parts, "; ")
}
