package memory

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Seed describes companies and their staff loaded into a fresh store.
type Seed struct {
	Companies []SeedCompany `toml:"companies"`
	Users     []SeedUser    `toml:"users"`
}

type SeedCompany struct {
	ID   uuid.UUID `toml:"id"`
	Name string    `toml:"name"`
	// HH:MM:SS, defaults to one hour
	CancellationGraceTime string  `toml:"cancellation_grace_time"`
	ServiceRules          *string `toml:"service_rules"`
}

type SeedUser struct {
	ID        uuid.UUID   `toml:"id"`
	Name      string      `toml:"name"`
	Phone     string      `toml:"phone"`
	Companies []uuid.UUID `toml:"companies"`
}

// LoadSeedFile decodes a TOML seed file.
func LoadSeedFile(path string) (*Seed, error) {
	var seed Seed
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return nil, fmt.Errorf("memory: decode seed %s: %w", path, err)
	}
	return &seed, nil
}

// Apply registers the seed's companies, users and memberships.
// A membership pointing at a company absent from the seed is an error.
func (s *Store) Apply(seed *Seed) error {
	known := make(map[uuid.UUID]struct{}, len(seed.Companies))

	for _, c := range seed.Companies {
		grace := domain.DefaultCancellationGraceTime
		if c.CancellationGraceTime != "" {
			d, err := types.ParseClockDuration(c.CancellationGraceTime)
			if err != nil {
				return fmt.Errorf("memory: company %s grace time: %w", c.Name, err)
			}
			grace = d
		}

		company := s.AddCompany(&domain.Company{
			ID:                    c.ID,
			Name:                  c.Name,
			CancellationGraceTime: grace,
			ServiceRules:          c.ServiceRules,
		})
		known[company.ID] = struct{}{}
	}

	for _, u := range seed.Users {
		user := s.AddUser(&domain.User{ID: u.ID, Name: u.Name, Phone: u.Phone})
		for _, companyID := range u.Companies {
			if _, ok := known[companyID]; !ok {
				return fmt.Errorf("memory: user %s references unknown company %s", u.Name, companyID)
			}
			s.AddMembership(domain.Owner{CompanyID: companyID, UserID: user.ID})
		}
	}

	return nil
}
