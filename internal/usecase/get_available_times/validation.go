package get_available_times

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// validateRequest валидирует входные данные и разбирает дату
func validateRequest(req *Request) (types.Date, error) {
	if req.CompanyID == uuid.Nil {
		return types.Date{}, fmt.Errorf("%w: companyID is required", ErrInvalidFormat)
	}

	if req.UserID == uuid.Nil {
		return types.Date{}, fmt.Errorf("%w: userID is required", ErrInvalidFormat)
	}

	date, err := types.ParseDate(req.Date)
	if err != nil {
		return types.Date{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	return date, nil
}
