package rules

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/circlein/CIN-BookingService/internal/domain"
	"github.com/circlein/CIN-BookingService/pkg/dbmetrics"
	"github.com/circlein/CIN-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий правил бронирования.
// Правила хранятся одной строкой (синглтон), читаются заново при каждом
// решении о допуске: администратор может изменить их между запросами.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает действующие правила бронирования
func (r *Repository) Get(ctx context.Context) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"max_per_family",
		"max_advance_booking_days",
		"min_booking_duration",
		"max_booking_duration",
		"cancellation_deadline",
		"updated_at",
	).
		From("booking_rules").
		Where(squirrel.Eq{"id": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var rules domain.BookingRules
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rules.MaxPerFamily,
		&rules.MaxAdvanceBookingDays,
		&rules.MinBookingDuration,
		&rules.MaxBookingDuration,
		&rules.CancellationDeadline,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRulesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan rules: %v", ErrScanRow, err)
	}

	rules.UpdatedAt = updatedAt.Time

	return &rules, nil
}

// Update полностью заменяет правила бронирования (upsert синглтона)
func (r *Repository) Update(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_rules").
		Columns(
			"id",
			"max_per_family",
			"max_advance_booking_days",
			"min_booking_duration",
			"max_booking_duration",
			"cancellation_deadline",
		).
		Values(
			true,
			rules.MaxPerFamily,
			rules.MaxAdvanceBookingDays,
			rules.MinBookingDuration,
			rules.MaxBookingDuration,
			rules.CancellationDeadline,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			max_per_family = EXCLUDED.max_per_family,
			max_advance_booking_days = EXCLUDED.max_advance_booking_days,
			min_booking_duration = EXCLUDED.min_booking_duration,
			max_booking_duration = EXCLUDED.max_booking_duration,
			cancellation_deadline = EXCLUDED.cancellation_deadline,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Update - execute upsert: %v", ErrExecQuery, err)
	}

	rules.UpdatedAt = updatedAt.Time

	return rules, nil
}
