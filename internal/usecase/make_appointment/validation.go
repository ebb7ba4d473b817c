package make_appointment

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validateRequest валидирует входные данные запроса
func validateRequest(validate *validator.Validate, req *Request) error {
	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return fmt.Errorf("%w: field %s failed on %q", ErrInvalidFormat, validationErrs[0].Field(), validationErrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	// Проверяем, что время указано
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidFormat)
	}

	return nil
}
