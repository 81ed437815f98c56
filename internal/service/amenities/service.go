package amenities

import (
	"context"
	"errors"
	"fmt"

	amenityRepo "github.com/circlein/CIN-BookingService/internal/infra/storage/amenity"
	"github.com/circlein/CIN-BookingService/internal/service/amenities/models"
)

// Service сервис для чтения каталога объектов сообщества
type Service struct {
	amenityRepo AmenityRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(amenityRepo AmenityRepository, logger Logger) *Service {
	return &Service{
		amenityRepo: amenityRepo,
		logger:      logger,
	}
}

// GetByID получает объект каталога по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AmenityResponse, error) {
	s.logger.Info("GetByID: fetching amenity id=%d", id)

	amenity, err := s.amenityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, amenityRepo.ErrAmenityNotFound) {
			s.logger.Warn("GetByID: amenity id=%d not found", id)
			return nil, ErrAmenityNotFound
		}
		s.logger.Error("GetByID: repository error for amenity id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAmenity(amenity), nil
}

// ListActive возвращает все активные объекты каталога
func (s *Service) ListActive(ctx context.Context) (*models.AmenityListResponse, error) {
	s.logger.Info("ListActive: fetching active amenities")

	amenities, err := s.amenityRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActive: successfully fetched %d amenities", len(amenities))
	return models.FromDomainAmenityList(amenities), nil
}
