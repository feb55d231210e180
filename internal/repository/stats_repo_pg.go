package repository

import (
	"context"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type pgStatsRepo struct {
	pool *pgxpool.Pool
}

func NewPgStatsRepo(pool *pgxpool.Pool) StatsRepository {
	return &pgStatsRepo{pool: pool}
}

func (r *pgStatsRepo) increment(ctx context.Context, day, column string) error {
	const ensure = `
		INSERT INTO usage_stats (day, logins, searches)
		VALUES ($1, 0, 0)
		ON CONFLICT (day) DO NOTHING`
	if _, err := r.pool.Exec(ctx, ensure, day); err != nil {
		return fmt.Errorf("ensuring usage row for %s: %w", day, err)
	}
	q := fmt.Sprintf("UPDATE usage_stats SET %s = %s + 1 WHERE day = $1", column, column)
	if _, err := r.pool.Exec(ctx, q, day); err != nil {
		return fmt.Errorf("incrementing %s for %s: %w", column, day, err)
	}
	return nil
}

func (r *pgStatsRepo) IncrementLogin(ctx context.Context, day string) error {
	return r.increment(ctx, day, "logins")
}

func (r *pgStatsRepo) IncrementSearch(ctx context.Context, day string) error {
	return r.increment(ctx, day, "searches")
}

func (r *pgStatsRepo) Range(ctx context.Context, from, to string) ([]model.UsageStat, error) {
	const q = `
		SELECT day, logins, searches
		FROM usage_stats
		WHERE day >= $1 AND day <= $2
		ORDER BY day`
	rows, err := r.pool.Query(ctx, q, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying usage stats: %w", err)
	}
	defer rows.Close()

	var out []model.UsageStat
	for rows.Next() {
		var s model.UsageStat
		if err := rows.Scan(&s.Day, &s.Logins, &s.Searches); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
