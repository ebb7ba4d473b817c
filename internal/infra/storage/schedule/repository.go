package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	schedulesTable = "schedules"
	breaksTable    = "schedule_breaks"

	// priorityConstraint ограничение уникальности приоритета среди активных расписаний владельца
	priorityConstraint = "schedules_owner_priority_excl"
)

var scheduleColumns = []string{
	"id",
	"company_id",
	"user_id",
	"name",
	"priority",
	"recurrence_type",
	"dates",
	"range_start",
	"range_end",
	"weekdays",
	"shift_start",
	"shift_end",
	"slot_duration_seconds",
	"created_at",
	"updated_at",
	"deleted_at",
}

// Repository репозиторий для работы с расписаниями
// Перерывы хранятся в отдельной таблице schedule_breaks с сохранением порядка (position)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByOwnerOrderedByPriority получает активные расписания владельца по возрастанию приоритета
// Внутри транзакции строки блокируются (FOR UPDATE) на время перестановки приоритетов
func (r *Repository) GetByOwnerOrderedByPriority(ctx context.Context, owner domain.Owner) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From(schedulesTable).
		Where(squirrel.Eq{
			"company_id": owner.CompanyID.String(),
			"user_id":    owner.UserID.String(),
		}).
		Where("deleted_at IS NULL").
		OrderBy("priority ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerOrderedByPriority - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerOrderedByPriority - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByOwnerOrderedByPriority - scan schedule: %v", ErrScanRow, err)
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerOrderedByPriority - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachBreaks(ctx, executor, schedules); err != nil {
		return nil, err
	}

	return schedules, nil
}

// GetByID получает активное расписание по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From(schedulesTable).
		Where(squirrel.Eq{"id": id.String()}).
		Where("deleted_at IS NULL")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	schedule, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %v", ErrScanRow, err)
	}

	if err := r.attachBreaks(ctx, executor, []*domain.Schedule{schedule}); err != nil {
		return nil, err
	}

	return schedule, nil
}

// Create создает расписание вместе с перерывами
// Вызывается внутри транзакции: строка расписания и перерывы пишутся вместе
func (r *Repository) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := schedule.Clone()
	dates, rangeStart, rangeEnd, weekdays := recurrenceValues(created.Recurrence)

	query, args, err := psqlbuilder.Insert(schedulesTable).
		Columns(
			"company_id",
			"user_id",
			"name",
			"priority",
			"recurrence_type",
			"dates",
			"range_start",
			"range_end",
			"weekdays",
			"shift_start",
			"shift_end",
			"slot_duration_seconds",
		).
		Values(
			created.Owner.CompanyID,
			created.Owner.UserID,
			created.Name,
			created.Priority,
			string(created.Recurrence.Type),
			dates,
			rangeStart,
			rangeEnd,
			weekdays,
			created.ShiftStart,
			created.ShiftEnd,
			int64(created.SlotDuration/time.Second),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isPriorityConflict(err) {
			return nil, fmt.Errorf("%w: Create: %v", ErrPriorityConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.insertBreaks(ctx, executor, created.ID, created.Breaks); err != nil {
		return nil, err
	}

	created.DeletedAt = nil
	return created, nil
}

// Update полностью перезаписывает активное расписание, перерывы заменяются целиком
func (r *Repository) Update(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updated := schedule.Clone()
	dates, rangeStart, rangeEnd, weekdays := recurrenceValues(updated.Recurrence)

	query, args, err := psqlbuilder.Update(schedulesTable).
		Set("company_id", updated.Owner.CompanyID).
		Set("user_id", updated.Owner.UserID).
		Set("name", updated.Name).
		Set("priority", updated.Priority).
		Set("recurrence_type", string(updated.Recurrence.Type)).
		Set("dates", dates).
		Set("range_start", rangeStart).
		Set("range_end", rangeEnd).
		Set("weekdays", weekdays).
		Set("shift_start", updated.ShiftStart).
		Set("shift_end", updated.ShiftEnd).
		Set("slot_duration_seconds", int64(updated.SlotDuration/time.Second)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": updated.ID.String()}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&updated.CreatedAt, &updated.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		if isPriorityConflict(err) {
			return nil, fmt.Errorf("%w: Update: %v", ErrPriorityConflict, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete(breaksTable).
		Where(squirrel.Eq{"schedule_id": updated.ID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build delete breaks query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: Update - delete breaks: %v", ErrExecQuery, err)
	}

	if err := r.insertBreaks(ctx, executor, updated.ID, updated.Breaks); err != nil {
		return nil, err
	}

	updated.DeletedAt = nil
	return updated, nil
}

// BatchIncrementPriorities сдвигает на 1 приоритеты активных расписаний владельца, начиная с threshold,
// кроме excludeID. Возвращает количество сдвинутых расписаний.
// Внутри транзакции проверка уникальности приоритета откладывается до коммита:
// сдвигаемое расписание может временно совпасть по приоритету с исключённым.
func (r *Repository) BatchIncrementPriorities(ctx context.Context, owner domain.Owner, threshold int, excludeID uuid.UUID) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if dbmetrics.IsInTransaction(ctx) {
		if _, err := executor.ExecContext(ctx, "SET CONSTRAINTS "+priorityConstraint+" DEFERRED"); err != nil {
			return 0, fmt.Errorf("%w: BatchIncrementPriorities - defer constraint: %v", ErrExecQuery, err)
		}
	}

	query, args, err := psqlbuilder.Update(schedulesTable).
		Set("priority", squirrel.Expr("priority + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"company_id": owner.CompanyID.String(),
			"user_id":    owner.UserID.String(),
		}).
		Where("deleted_at IS NULL").
		Where(squirrel.GtOrEq{"priority": threshold}).
		Where(squirrel.NotEq{"id": excludeID.String()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: BatchIncrementPriorities - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isPriorityConflict(err) {
			return 0, fmt.Errorf("%w: BatchIncrementPriorities: %v", ErrPriorityConflict, err)
		}
		return 0, fmt.Errorf("%w: BatchIncrementPriorities - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: BatchIncrementPriorities - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Delete помечает расписание удалённым (deleted_at) и возвращает его состояние до удаления
// Приоритеты остальных расписаний не пересчитываются
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	snapshot, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(schedulesTable).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String()}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Delete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Delete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return nil, ErrScheduleNotFound
	}

	return snapshot, nil
}

// insertBreaks сохраняет перерывы расписания одной вставкой
func (r *Repository) insertBreaks(ctx context.Context, executor DBExecutor, scheduleID uuid.UUID, breaks []domain.Break) error {
	if len(breaks) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert(breaksTable).
		Columns("schedule_id", "position", "name", "start_time", "duration_seconds")
	for i, b := range breaks {
		insertBuilder = insertBuilder.Values(scheduleID, i, b.Name, b.Start, int64(b.Duration/time.Second))
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertBreaks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertBreaks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// attachBreaks загружает перерывы для всех расписаний одним запросом
func (r *Repository) attachBreaks(ctx context.Context, executor DBExecutor, schedules []*domain.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Schedule, len(schedules))
	ids := make([]string, 0, len(schedules))
	for _, s := range schedules {
		s.Breaks = make([]domain.Break, 0)
		byID[s.ID] = s
		ids = append(ids, s.ID.String())
	}

	query, args, err := psqlbuilder.Select("schedule_id", "name", "start_time", "duration_seconds").
		From(breaksTable).
		Where(squirrel.Eq{"schedule_id": ids}).
		OrderBy("schedule_id", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			scheduleID      uuid.UUID
			b               domain.Break
			durationSeconds int64
		)
		if err := rows.Scan(&scheduleID, &b.Name, &b.Start, &durationSeconds); err != nil {
			return fmt.Errorf("%w: attachBreaks - scan break: %v", ErrScanRow, err)
		}
		b.Duration = time.Duration(durationSeconds) * time.Second

		if s, ok := byID[scheduleID]; ok {
			s.Breaks = append(s.Breaks, b)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachBreaks - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSchedule сканирует строку schedules в порядке scheduleColumns
func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var (
		s                   domain.Schedule
		recurrenceType      string
		dates               pq.StringArray
		rangeStart          sql.NullTime
		rangeEnd            sql.NullTime
		weekdays            pq.Int64Array
		slotDurationSeconds int64
		deletedAt           sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.Owner.CompanyID,
		&s.Owner.UserID,
		&s.Name,
		&s.Priority,
		&recurrenceType,
		&dates,
		&rangeStart,
		&rangeEnd,
		&weekdays,
		&s.ShiftStart,
		&s.ShiftEnd,
		&slotDurationSeconds,
		&s.CreatedAt,
		&s.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	recurrence, err := toDomainRecurrence(recurrenceType, dates, rangeStart, rangeEnd, weekdays)
	if err != nil {
		return nil, err
	}
	s.Recurrence = recurrence
	s.SlotDuration = time.Duration(slotDurationSeconds) * time.Second

	if deletedAt.Valid {
		t := deletedAt.Time
		s.DeletedAt = &t
	}

	return &s, nil
}

// recurrenceValues раскладывает повторение по колонкам
func recurrenceValues(r domain.Recurrence) (interface{}, interface{}, interface{}, interface{}) {
	isoDates := make([]string, 0, len(r.Dates))
	for _, d := range r.Dates {
		isoDates = append(isoDates, d.ISO())
	}

	days := make([]int64, 0, len(r.Weekdays))
	for _, wd := range r.Weekdays {
		days = append(days, int64(wd))
	}

	return pq.Array(isoDates), nullableDate(r.RangeStart), nullableDate(r.RangeEnd), pq.Array(days)
}

func nullableDate(d types.Date) interface{} {
	if d.IsZero() {
		return nil
	}
	return d.ISO()
}

func toDomainRecurrence(
	recurrenceType string,
	dates pq.StringArray,
	rangeStart, rangeEnd sql.NullTime,
	weekdays pq.Int64Array,
) (domain.Recurrence, error) {
	r := domain.Recurrence{Type: domain.RecurrenceType(recurrenceType)}

	for _, raw := range dates {
		d, err := types.ParseISODate(raw)
		if err != nil {
			return domain.Recurrence{}, err
		}
		r.Dates = append(r.Dates, d)
	}

	if rangeStart.Valid {
		r.RangeStart = types.DateOf(rangeStart.Time)
	}
	if rangeEnd.Valid {
		r.RangeEnd = types.DateOf(rangeEnd.Time)
	}

	for _, wd := range weekdays {
		r.Weekdays = append(r.Weekdays, time.Weekday(wd))
	}

	return r, nil
}

// isPriorityConflict проверяет нарушение уникальности приоритета (exclusion или unique)
func isPriorityConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23P01" || pqErr.Code == "23505"
}
