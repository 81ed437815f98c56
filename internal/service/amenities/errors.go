package amenities

import "errors"

var (
	// ErrAmenityNotFound возвращается, когда объект каталога не найден
	ErrAmenityNotFound = errors.New("amenity not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
