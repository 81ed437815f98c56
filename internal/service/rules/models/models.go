package models

import (
	"time"

	"github.com/circlein/CIN-BookingService/internal/domain"
)

// Request модели

// UpdateRulesRequest запрос администратора на обновление правил сообщества.
// Каждое поле опционально: отсутствующие поля сохраняют текущее значение.
type UpdateRulesRequest struct {
	UserID  int64 `json:"userId"`
	IsAdmin bool  `json:"isAdmin"`

	MaxPerFamily          *int `json:"maxPerFamily,omitempty"`
	MaxAdvanceBookingDays *int `json:"maxAdvanceBookingDays,omitempty"`
	MinBookingDuration    *int `json:"minBookingDuration,omitempty"`
	MaxBookingDuration    *int `json:"maxBookingDuration,omitempty"`
	CancellationDeadline  *int `json:"cancellationDeadline,omitempty"`
}

// Response модели

// RulesResponse ответ с действующими правилами бронирования
type RulesResponse struct {
	MaxPerFamily          int       `json:"maxPerFamily"`
	MaxAdvanceBookingDays int       `json:"maxAdvanceBookingDays"`
	MinBookingDuration    int       `json:"minBookingDuration"`
	MaxBookingDuration    int       `json:"maxBookingDuration"`
	CancellationDeadline  int       `json:"cancellationDeadline"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainRules конвертирует domain модель в DTO
func FromDomainRules(r *domain.BookingRules) *RulesResponse {
	if r == nil {
		return nil
	}

	return &RulesResponse{
		MaxPerFamily:          r.MaxPerFamily,
		MaxAdvanceBookingDays: r.MaxAdvanceBookingDays,
		MinBookingDuration:    r.MinBookingDuration,
		MaxBookingDuration:    r.MaxBookingDuration,
		CancellationDeadline:  r.CancellationDeadline,
		UpdatedAt:             r.UpdatedAt,
	}
}

// ApplyTo накладывает указанные в запросе поля поверх текущих правил
func (r *UpdateRulesRequest) ApplyTo(current *domain.BookingRules) *domain.BookingRules {
	updated := *current

	if r.MaxPerFamily != nil {
		updated.MaxPerFamily = *r.MaxPerFamily
	}
	if r.MaxAdvanceBookingDays != nil {
		updated.MaxAdvanceBookingDays = *r.MaxAdvanceBookingDays
	}
	if r.MinBookingDuration != nil {
		updated.MinBookingDuration = *r.MinBookingDuration
	}
	if r.MaxBookingDuration != nil {
		updated.MaxBookingDuration = *r.MaxBookingDuration
	}
	if r.CancellationDeadline != nil {
		updated.CancellationDeadline = *r.CancellationDeadline
	}

	return &updated
}
