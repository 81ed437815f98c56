package models

import "github.com/circlein/CIN-BookingService/internal/domain"

// AmenityResponse ответ с данными объекта каталога
type AmenityResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	MaxCapacity int     `json:"maxCapacity"`
	IsActive    bool    `json:"isActive"`
}

// AmenityListResponse ответ со списком объектов каталога
type AmenityListResponse struct {
	Amenities []AmenityResponse `json:"amenities"`
}

// FromDomainAmenity конвертирует domain модель в DTO
func FromDomainAmenity(a *domain.Amenity) *AmenityResponse {
	if a == nil {
		return nil
	}

	return &AmenityResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		MaxCapacity: a.MaxCapacity,
		IsActive:    a.IsActive,
	}
}

// FromDomainAmenityList конвертирует список domain моделей в DTO
func FromDomainAmenityList(amenities []*domain.Amenity) *AmenityListResponse {
	resp := &AmenityListResponse{
		Amenities: make([]AmenityResponse, 0, len(amenities)),
	}

	for _, amenity := range amenities {
		if amenityResp := FromDomainAmenity(amenity); amenityResp != nil {
			resp.Amenities = append(resp.Amenities, *amenityResp)
		}
	}

	return resp
}
