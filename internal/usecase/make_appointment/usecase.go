package make_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	ownerRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/owner"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_times"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// UseCase use case для создания записи на свободный слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	ownerRegistry   OwnerRegistry
	availability    AvailabilityProvider
	txManager       TransactionManager
	validate        *validator.Validate
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	ownerRegistry OwnerRegistry,
	availability AvailabilityProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		ownerRegistry:   ownerRegistry,
		availability:    availability,
		txManager:       txManager,
		validate:        validator.New(),
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
// Проверка занятости, проверка слота и вставка выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MakeAppointment: company=%s, user=%s, time=%s",
		req.CompanyID, req.UserID, req.Time.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(uc.validate, req); err != nil {
		uc.logger.Warn("MakeAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Время записи должно быть в будущем
	now := uc.timeProvider.Now()
	if !req.Time.After(now) {
		uc.logger.Warn("MakeAppointment: time %s is not after now %s", req.Time, now)
		return nil, ErrPastTime
	}

	owner := domain.Owner{CompanyID: req.CompanyID, UserID: req.UserID}

	// 3. Проверяем существование владельца расписания
	exists, err := uc.ownerRegistry.Exists(ctx, owner)
	if err != nil {
		uc.logger.Error("MakeAppointment: failed to check owner %s: %v", owner, err)
		return nil, fmt.Errorf("%w: failed to check owner: %w", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("MakeAppointment: owner %s not found", owner)
		return nil, ErrOwnerNotFound
	}

	// 4. Ищем клиента по телефону (только чтение, создание - после всех проверок)
	client, err := uc.ownerRegistry.GetUserByPhone(ctx, req.ClientPhone)
	if err != nil && !errors.Is(err, ownerRepo.ErrUserNotFound) {
		uc.logger.Error("MakeAppointment: failed to get client by phone: %v", err)
		return nil, fmt.Errorf("%w: failed to get client: %w", ErrInternal, err)
	}

	var result *domain.Appointment

	// 5. Выполняем проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Время не должно быть занято
		_, err := uc.appointmentRepo.GetByExactTime(txCtx, owner, req.Time)
		if err == nil {
			uc.logger.Warn("MakeAppointment: time %s already taken for %s", req.Time, owner)
			return ErrTimeAlreadyTaken
		}
		if !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Error("MakeAppointment: failed to check time: %v", err)
			return fmt.Errorf("%w: failed to check time: %w", ErrInternal, err)
		}

		// 5.2. Время должно совпадать с началом свободного слота
		if err := uc.checkAvailable(txCtx, owner, req); err != nil {
			return err
		}

		// 5.3. Создаём клиента, если его ещё нет
		if client == nil {
			client, err = uc.createClient(txCtx, req)
			if err != nil {
				return err
			}
		}

		// 5.4. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			Title:        req.Title,
			Time:         req.Time,
			Owner:        owner,
			ClientUserID: client.ID,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrTimeTaken) {
				uc.logger.Warn("MakeAppointment: time %s taken concurrently for %s", req.Time, owner)
				return ErrTimeAlreadyTaken
			}
			uc.logger.Error("MakeAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("MakeAppointment: successfully created appointment id=%s", result.ID)

	return &Response{
		ID:           result.ID,
		Title:        result.Title,
		Time:         result.Time,
		CompanyID:    result.Owner.CompanyID,
		UserID:       result.Owner.UserID,
		ClientUserID: result.ClientUserID,
		CreatedAt:    result.CreatedAt,
	}, nil
}

// checkAvailable проверяет, что время записи - начало свободного слота на дату записи
func (uc *UseCase) checkAvailable(ctx context.Context, owner domain.Owner, req *Request) error {
	date := types.DateOf(req.Time.In(uc.availability.Location()))

	available, err := uc.availability.Execute(ctx, &get_available_times.Request{
		CompanyID: owner.CompanyID,
		UserID:    owner.UserID,
		Date:      date.String(),
	})
	if err != nil {
		switch {
		case errors.Is(err, get_available_times.ErrNoSchedulesConfigured):
			uc.logger.Warn("MakeAppointment: no schedules for %s on %s", owner, date)
			return ErrNoSchedulesConfigured
		case errors.Is(err, get_available_times.ErrOwnerNotFound):
			return ErrOwnerNotFound
		}
		uc.logger.Error("MakeAppointment: failed to get available times: %v", err)
		return fmt.Errorf("%w: failed to get available times: %w", ErrInternal, err)
	}

	if !available.HasSlotStartingAt(req.Time) {
		uc.logger.Warn("MakeAppointment: time %s is not a free slot start for %s (%d slots)",
			req.Time, owner, len(available.Slots))
		return ErrTimeNotAvailable
	}

	return nil
}

// createClient создаёт клиента; при гонке по телефону возвращает уже созданного
func (uc *UseCase) createClient(ctx context.Context, req *Request) (*domain.User, error) {
	client, err := uc.ownerRegistry.CreateUser(ctx, &domain.User{Name: req.ClientName, Phone: req.ClientPhone})
	if err == nil {
		uc.logger.Info("MakeAppointment: created client id=%s", client.ID)
		return client, nil
	}

	if errors.Is(err, ownerRepo.ErrPhoneTaken) {
		client, err = uc.ownerRegistry.GetUserByPhone(ctx, req.ClientPhone)
		if err == nil {
			return client, nil
		}
	}

	uc.logger.Error("MakeAppointment: failed to create client: %v", err)
	return nil, fmt.Errorf("%w: failed to create client: %w", ErrInternal, err)
}
