package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модели

// BreakInput перерыв внутри смены
type BreakInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Start    string `json:"start" validate:"required"`    // HH:MM:SS
	Duration string `json:"duration" validate:"required"` // HH:MM:SS
}

// AddScheduleRequest запрос на создание расписания
type AddScheduleRequest struct {
	CompanyID      uuid.UUID    `json:"companyId"`
	UserID         uuid.UUID    `json:"userId"`
	Name           string       `json:"name" validate:"required,max=255"`
	RecurrenceType string       `json:"recurrenceType" validate:"required,oneof=ON_DATES DATE_RANGE"`
	Dates          []string     `json:"dates" validate:"required,min=1"`  // MM/DD/YYYY; для DATE_RANGE - начало и конец
	Weekdays       []string     `json:"weekdays,omitempty"`               // Mon..Sun, только для DATE_RANGE
	ShiftStart     string       `json:"shiftStart" validate:"required"`   // HH:MM:SS
	ShiftEnd       string       `json:"shiftEnd" validate:"required"`     // HH:MM:SS
	SlotDuration   string       `json:"slotDuration" validate:"required"` // HH:MM:SS
	Breaks         []BreakInput `json:"breaks,omitempty" validate:"dive"`
	Priority       *int         `json:"priority,omitempty" validate:"omitempty,min=1"` // Если не указан - в конец списка
}

// PatchScheduleRequest запрос на частичное изменение расписания
// nil означает "не менять"; пустой список breaks удаляет все перерывы
type PatchScheduleRequest struct {
	CompanyID      *uuid.UUID   `json:"companyId,omitempty"`
	UserID         *uuid.UUID   `json:"userId,omitempty"`
	Name           *string      `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	RecurrenceType *string      `json:"recurrenceType,omitempty" validate:"omitempty,oneof=ON_DATES DATE_RANGE"`
	Dates          []string     `json:"dates,omitempty"`
	Weekdays       []string     `json:"weekdays,omitempty"`
	ShiftStart     *string      `json:"shiftStart,omitempty"`
	ShiftEnd       *string      `json:"shiftEnd,omitempty"`
	SlotDuration   *string      `json:"slotDuration,omitempty"`
	Breaks         []BreakInput `json:"breaks,omitempty" validate:"omitempty,dive"`
	Priority       *int         `json:"priority,omitempty" validate:"omitempty,min=1"`
}

// Response модели

// BreakResponse перерыв в ответе
type BreakResponse struct {
	Name     string `json:"name"`
	Start    string `json:"start"`
	Duration string `json:"duration"`
}

// ScheduleResponse расписание в ответе
type ScheduleResponse struct {
	ID             uuid.UUID       `json:"id"`
	CompanyID      uuid.UUID       `json:"companyId"`
	UserID         uuid.UUID       `json:"userId"`
	Name           string          `json:"name"`
	Priority       int             `json:"priority"`
	RecurrenceType string          `json:"recurrenceType"`
	Dates          []string        `json:"dates"`
	Weekdays       []string        `json:"weekdays"`
	ShiftStart     string          `json:"shiftStart"`
	ShiftEnd       string          `json:"shiftEnd"`
	SlotDuration   string          `json:"slotDuration"`
	Breaks         []BreakResponse `json:"breaks"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ScheduleListResponse список расписаний владельца по возрастанию приоритета
type ScheduleListResponse struct {
	Schedules []*ScheduleResponse `json:"schedules"`
}

// FromDomainSchedule конвертирует доменную модель в ответ
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	breaks := make([]BreakResponse, 0, len(s.Breaks))
	for _, b := range s.Breaks {
		breaks = append(breaks, BreakResponse{
			Name:     b.Name,
			Start:    b.Start.String(),
			Duration: types.FormatClockDuration(b.Duration),
		})
	}

	return &ScheduleResponse{
		ID:             s.ID,
		CompanyID:      s.Owner.CompanyID,
		UserID:         s.Owner.UserID,
		Name:           s.Name,
		Priority:       s.Priority,
		RecurrenceType: string(s.Recurrence.Type),
		Dates:          s.Recurrence.DateTokens(),
		Weekdays:       s.Recurrence.WeekdayTokens(),
		ShiftStart:     s.ShiftStart.String(),
		ShiftEnd:       s.ShiftEnd.String(),
		SlotDuration:   types.FormatClockDuration(s.SlotDuration),
		Breaks:         breaks,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromDomainScheduleList конвертирует список расписаний
func FromDomainScheduleList(schedules []*domain.Schedule) *ScheduleListResponse {
	result := make([]*ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		result = append(result, FromDomainSchedule(s))
	}
	return &ScheduleListResponse{Schedules: result}
}
