package create_booking

import "time"

// Request модель запроса на создание бронирования.
// Идентичность вызывающего передается явно, usecase сам её не выясняет.
type Request struct {
	UserID    int64     // ID жителя
	AmenityID int64     // ID объекта из каталога
	StartTime time.Time // начало слота
	EndTime   time.Time // конец слота
}

// Response модель ответа: созданное бронирование и его исход
type Response struct {
	ID        int64
	UserID    int64
	AmenityID int64
	StartTime time.Time
	EndTime   time.Time
	Status    string // confirmed | waitlist

	CreatedAt time.Time
	UpdatedAt time.Time
}
