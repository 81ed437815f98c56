package domain

// Amenity represents a shared community amenity (court, pool, hall).
// Owned by catalog management, read-only for this service.
//
// MaxCapacity хранится как справочное значение: модель допуска остаётся
// single-occupancy, на каждый пересекающийся интервал подтверждается
// ровно одна бронь независимо от вместимости.
type Amenity struct {
	ID          int64
	Name        string
	Description *string
	MaxCapacity int
	IsActive    bool
}
