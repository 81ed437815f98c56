package list_amenities

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/circlein/CIN-BookingService/internal/api/handlers"
	"github.com/circlein/CIN-BookingService/internal/service/amenities"
)

const (
	msgInvalidAmenityID = "некорректный ID объекта"
	msgAmenityNotFound  = "объект не найден"
)

type Handler struct {
	service AmenityService
	logger  Logger
}

func NewHandler(service AmenityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/amenities
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /amenities - Failed to list amenities: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /amenities - Amenities retrieved: count=%d", len(result.Amenities))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/amenities/{amenityId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	amenityIDStr := vars["amenityId"]

	amenityID, err := strconv.ParseInt(amenityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /amenities/{id} - Invalid amenity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAmenityID)
		return
	}

	result, err := h.service.GetByID(r.Context(), amenityID)
	if err != nil {
		if errors.Is(err, amenities.ErrAmenityNotFound) {
			h.logger.Warn("GET /amenities/{id} - Amenity not found: amenity_id=%d", amenityID)
			handlers.RespondNotFound(w, msgAmenityNotFound)
			return
		}
		h.logger.Error("GET /amenities/{id} - Failed to get amenity: amenity_id=%d, error=%v", amenityID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
