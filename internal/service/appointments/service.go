package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	ownerRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/owner"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments/models"
)

// Service сервис для работы с записями: просмотр и отмена
type Service struct {
	appointmentRepo AppointmentRepository
	companyRepo     CompanyRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	companyRepo CompanyRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		companyRepo:     companyRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// Cancel отменяет запись и возвращает её снимок
// Отмена возможна строго раньше, чем за CancellationGraceTime компании до начала записи
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	var deleted *domain.Appointment
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Получаем запись
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Cancel: appointment id=%s not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		// Получаем политику отмены компании
		company, err := s.companyRepo.GetCompany(txCtx, appointment.Owner.CompanyID)
		if err != nil {
			if errors.Is(err, ownerRepo.ErrCompanyNotFound) {
				s.logger.Warn("Cancel: company id=%s of appointment id=%s not found", appointment.Owner.CompanyID, id)
				return ErrOwnerNotFound
			}
			s.logger.Error("Cancel: failed to get company id=%s: %v", appointment.Owner.CompanyID, err)
			return fmt.Errorf("%w: Cancel - failed to get company: %w", ErrInternal, err)
		}

		// Проверяем окно отмены
		now := s.timeProvider.Now()
		if !appointment.CanBeCancelled(now, company.CancellationGraceTime) {
			s.logger.Warn("Cancel: window closed for appointment id=%s, deadline=%s, now=%s",
				id, appointment.CancellationDeadline(company.CancellationGraceTime), now)
			return ErrCancellationWindowClosed
		}

		// Удаляем запись
		deleted, err = s.appointmentRepo.Delete(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: failed to delete appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - failed to delete: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return models.FromDomainAppointment(deleted), nil
}
