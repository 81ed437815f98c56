package amenity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/circlein/CIN-BookingService/internal/domain"
	"github.com/circlein/CIN-BookingService/pkg/dbmetrics"
	"github.com/circlein/CIN-BookingService/pkg/psqlbuilder"
)

var amenityColumns = []string{
	"id",
	"name",
	"description",
	"max_capacity",
	"is_active",
}

// Repository read-only репозиторий каталога объектов.
// Каталогом управляет внешняя админ-панель, сервис бронирования только читает.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает объект по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Amenity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(amenityColumns...).
		From("amenities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var a domain.Amenity
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&a.Name,
		&a.Description,
		&a.MaxCapacity,
		&a.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAmenityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan amenity: %v", ErrScanRow, err)
	}

	return &a, nil
}

// ListActive получает все активные объекты каталога
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Amenity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(amenityColumns...).
		From("amenities").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	amenities := make([]*domain.Amenity, 0)

	for rows.Next() {
		var a domain.Amenity
		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Description,
			&a.MaxCapacity,
			&a.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		amenities = append(amenities, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return amenities, nil
}
