package companies

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	ownerRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/owner"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/companies/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Service сервис правил обслуживания компании
type Service struct {
	companyRepo CompanyRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса компаний
func NewService(companyRepo CompanyRepository, logger Logger) *Service {
	return &Service{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// GetCompany получает компанию по ID
func (s *Service) GetCompany(ctx context.Context, id uuid.UUID) (*models.CompanyResponse, error) {
	company, err := s.companyRepo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, ownerRepo.ErrCompanyNotFound) {
			s.logger.Warn("GetCompany: company id=%s not found", id)
			return nil, ErrOwnerNotFound
		}
		s.logger.Error("GetCompany: repository error for company id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetCompany - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainCompany(company), nil
}

// PatchServiceRules изменяет время, за которое запись ещё можно отменить, и текст правил
func (s *Service) PatchServiceRules(ctx context.Context, id uuid.UUID, req *models.PatchServiceRulesRequest) (*models.CompanyResponse, error) {
	s.logger.Info("PatchServiceRules: updating company id=%s", id)

	company, err := s.companyRepo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, ownerRepo.ErrCompanyNotFound) {
			s.logger.Warn("PatchServiceRules: company id=%s not found", id)
			return nil, ErrOwnerNotFound
		}
		s.logger.Error("PatchServiceRules: repository error for company id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: PatchServiceRules - repository error: %w", ErrInternal, err)
	}

	if req.CancellationGraceTime != nil {
		grace, err := types.ParseClockDuration(*req.CancellationGraceTime)
		if err != nil {
			s.logger.Warn("PatchServiceRules: invalid grace time %q: %v", *req.CancellationGraceTime, err)
			return nil, fmt.Errorf("%w: cancellationGraceTime: %v", ErrInvalidFormat, err)
		}
		company.CancellationGraceTime = grace
	}

	if req.ServiceRules != nil {
		if n := utf8.RuneCountInString(*req.ServiceRules); n > domain.MaxServiceRulesLength {
			s.logger.Warn("PatchServiceRules: service rules too long (%d chars)", n)
			return nil, fmt.Errorf("%w: serviceRules longer than %d characters", ErrInvalidFormat, domain.MaxServiceRulesLength)
		}
		company.ServiceRules = req.ServiceRules
	}

	updated, err := s.companyRepo.UpdateCompany(ctx, company)
	if err != nil {
		if errors.Is(err, ownerRepo.ErrCompanyNotFound) {
			return nil, ErrOwnerNotFound
		}
		s.logger.Error("PatchServiceRules: failed to update company id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: PatchServiceRules - failed to update: %w", ErrInternal, err)
	}

	s.logger.Info("PatchServiceRules: company id=%s grace time=%s", id, types.FormatClockDuration(updated.CancellationGraceTime))
	return models.FromDomainCompany(updated), nil
}
