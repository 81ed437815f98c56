package get_rules

import (
	"errors"
	"net/http"

	"github.com/circlein/CIN-BookingService/internal/api/handlers"
	"github.com/circlein/CIN-BookingService/internal/service/rules"
)

const (
	msgRulesNotConfigured = "правила бронирования не настроены"
)

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, rules.ErrRulesNotConfigured) {
			h.logger.Warn("GET /rules - Rules not configured")
			handlers.RespondNotFound(w, msgRulesNotConfigured)
			return
		}
		h.logger.Error("GET /rules - Failed to get rules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
