package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kennyy02/Samgyupmasaya/internal/customer/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/customer/domain/models"
)

type CustomerRepo struct {
	pool *pgxpool.Pool
}

func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

func (r *CustomerRepo) Details(ctx context.Context, id int64) (models.CustomerDetails, error) {
	var details models.CustomerDetails
	err := r.pool.QueryRow(ctx,
		`SELECT customer_name, customer_email FROM customers WHERE id = $1`, id,
	).Scan(&details.Name, &details.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.CustomerDetails{}, core.ErrCustomerNotFound
	}
	if err != nil {
		return models.CustomerDetails{}, err
	}
	return details, nil
}

func (r *CustomerRepo) DailyRegistrations(ctx context.Context) ([]models.DailyRegistrations, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT TO_CHAR(created_at::DATE, 'YYYY-MM-DD'), COUNT(id)
		FROM customers
		GROUP BY created_at::DATE
		ORDER BY created_at::DATE ASC
		LIMIT 30`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.DailyRegistrations
	for rows.Next() {
		var row models.DailyRegistrations
		if err := rows.Scan(&row.Date, &row.Count); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
