package update_rules

import (
	"github.com/circlein/CIN-BookingService/internal/service/rules/models"
)

// UpdateRulesRequest HTTP request model
// Отсутствующие поля сохраняют текущие значения правил
type UpdateRulesRequest struct {
	MaxPerFamily          *int `json:"maxPerFamily,omitempty"`
	MaxAdvanceBookingDays *int `json:"maxAdvanceBookingDays,omitempty"`
	MinBookingDuration    *int `json:"minBookingDuration,omitempty"`
	MaxBookingDuration    *int `json:"maxBookingDuration,omitempty"`
	CancellationDeadline  *int `json:"cancellationDeadline,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateRulesRequest) ToServiceRequest(userID int64, isAdmin bool) *models.UpdateRulesRequest {
	return &models.UpdateRulesRequest{
		UserID:                userID,
		IsAdmin:               isAdmin,
		MaxPerFamily:          r.MaxPerFamily,
		MaxAdvanceBookingDays: r.MaxAdvanceBookingDays,
		MinBookingDuration:    r.MinBookingDuration,
		MaxBookingDuration:    r.MaxBookingDuration,
		CancellationDeadline:  r.CancellationDeadline,
	}
}
