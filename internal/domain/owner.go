package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Owner identifies whose calendar a schedule or appointment belongs to:
// a user working for a company.
type Owner struct {
	CompanyID uuid.UUID `json:"companyId"`
	UserID    uuid.UUID `json:"userId"`
}

// IsZero reports whether neither id is set.
func (o Owner) IsZero() bool {
	return o.CompanyID == uuid.Nil && o.UserID == uuid.Nil
}

func (o Owner) String() string {
	return fmt.Sprintf("company=%s user=%s", o.CompanyID, o.UserID)
}
