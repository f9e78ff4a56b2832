package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClockRepository reads the institution's "today".
type ClockRepository struct {
	pool *pgxpool.Pool
}

func NewClockRepository(pool *pgxpool.Pool) *ClockRepository {
	return &ClockRepository{pool: pool}
}

// Today returns get_today_cr() as midnight UTC.
func (r *ClockRepository) Today(ctx context.Context) (time.Time, error) {
	var d pgtype.Date
	if err := r.pool.QueryRow(ctx, "SELECT get_today_cr()").Scan(&d); err != nil {
		return time.Time{}, fmt.Errorf("get_today_cr: %w", err)
	}
	if !d.Valid {
		return time.Time{}, fmt.Errorf("get_today_cr returned null")
	}
	y, m, day := d.Time.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
}
