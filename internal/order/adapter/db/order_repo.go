package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/models"
)

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

func (r *OrderRepo) CreateOnline(ctx context.Context, order models.OnlineOrder) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO order_history_online (
			customer_id, customer_name, customer_email,
			address, contact_number, category,
			product_name, product_id, quantity,
			price, payment_method, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		order.CustomerID,
		order.CustomerName,
		order.CustomerEmail,
		order.Address,
		order.ContactNumber,
		order.Category,
		order.ProductName,
		order.ProductID,
		order.Quantity,
		order.Price,
		order.PaymentMethod,
		order.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert online order: %w", err)
	}
	return id, nil
}

// CreateOnsiteBatch inserts every line of one table's checkout inside a
// single transaction: either all lines land or none do.
func (r *OrderRepo) CreateOnsiteBatch(ctx context.Context, orders []models.OnsiteOrder) ([]int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO order_history_onsite (
				table_id, customer_name, number_of_persons,
				category, product_name, product_id,
				quantity, price, payment_status, change_status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
			order.TableID,
			order.CustomerName,
			order.NumberOfPersons,
			order.Category,
			order.ProductName,
			order.ProductID,
			order.Quantity,
			order.Price,
			order.PaymentStatus,
			order.ChangeStatus,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to insert onsite order line %q: %w", order.ProductName, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit onsite order: %w", err)
	}
	return ids, nil
}

func (r *OrderRepo) GetOnline(ctx context.Context, id int64) (models.OnlineOrder, error) {
	var o models.OnlineOrder
	err := r.pool.QueryRow(ctx, `
		SELECT id, customer_id, customer_name, customer_email,
		       address, contact_number, category,
		       product_name, product_id, quantity,
		       price, payment_method, status, ordered_at
		FROM order_history_online
		WHERE id = $1`, id,
	).Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail,
		&o.Address, &o.ContactNumber, &o.Category,
		&o.ProductName, &o.ProductID, &o.Quantity,
		&o.Price, &o.PaymentMethod, &o.Status, &o.OrderedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.OnlineOrder{}, core.ErrOrderNotFound
	}
	if err != nil {
		return models.OnlineOrder{}, err
	}
	return o, nil
}

func (r *OrderRepo) GetOnsite(ctx context.Context, id int64) (models.OnsiteOrder, error) {
	var o models.OnsiteOrder
	err := r.pool.QueryRow(ctx, `
		SELECT id, table_id, customer_name, number_of_persons,
		       category, product_name, product_id,
		       quantity, price, payment_status, change_status, ordered_at
		FROM order_history_onsite
		WHERE id = $1`, id,
	).Scan(
		&o.ID, &o.TableID, &o.CustomerName, &o.NumberOfPersons,
		&o.Category, &o.ProductName, &o.ProductID,
		&o.Quantity, &o.Price, &o.PaymentStatus, &o.ChangeStatus, &o.OrderedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.OnsiteOrder{}, core.ErrOrderNotFound
	}
	if err != nil {
		return models.OnsiteOrder{}, err
	}
	return o, nil
}

func (r *OrderRepo) ListOnline(ctx context.Context) ([]models.OnlineOrder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, customer_id, customer_name, customer_email,
		       address, contact_number, category,
		       product_name, product_id, quantity,
		       price, payment_method, status, ordered_at
		FROM order_history_online
		ORDER BY ordered_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.OnlineOrder
	for rows.Next() {
		var o models.OnlineOrder
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail,
			&o.Address, &o.ContactNumber, &o.Category,
			&o.ProductName, &o.ProductID, &o.Quantity,
			&o.Price, &o.PaymentMethod, &o.Status, &o.OrderedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepo) ListOnsite(ctx context.Context) ([]models.OnsiteOrder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, table_id, customer_name, number_of_persons,
		       category, product_name, product_id,
		       quantity, price, payment_status, change_status, ordered_at
		FROM order_history_onsite
		ORDER BY ordered_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.OnsiteOrder
	for rows.Next() {
		var o models.OnsiteOrder
		if err := rows.Scan(
			&o.ID, &o.TableID, &o.CustomerName, &o.NumberOfPersons,
			&o.Category, &o.ProductName, &o.ProductID,
			&o.Quantity, &o.Price, &o.PaymentStatus, &o.ChangeStatus, &o.OrderedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepo) UpdateOnlineStatus(ctx context.Context, id int64, status models.OnlineStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE order_history_online SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepo) UpdateOnsiteStatus(ctx context.Context, id int64, status models.OnsiteStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE order_history_onsite SET change_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrOrderNotFound
	}
	return nil
}

// Search matches customer or product name over both tables; every row is
// tagged with its origin so the admin UI can mix them in one list.
func (r *OrderRepo) Search(ctx context.Context, query string) ([]dto.SearchRow, error) {
	pattern := "%" + query + "%"

	var results []dto.SearchRow

	rows, err := r.pool.Query(ctx, `
		SELECT id, customer_name, product_name, quantity, price, status, ordered_at
		FROM order_history_online
		WHERE customer_name ILIKE $1 OR product_name ILIKE $1
		ORDER BY ordered_at DESC`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		row := dto.SearchRow{Type: core.SetOnline}
		if err := rows.Scan(&row.ID, &row.CustomerName, &row.ProductName, &row.Quantity, &row.Price, &row.Status, &row.OrderedAt); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT id, customer_name, product_name, quantity, price, change_status, ordered_at
		FROM order_history_onsite
		WHERE customer_name ILIKE $1 OR product_name ILIKE $1
		ORDER BY ordered_at DESC`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		row := dto.SearchRow{Type: core.SetOnsite}
		if err := rows.Scan(&row.ID, &row.CustomerName, &row.ProductName, &row.Quantity, &row.Price, &row.Status, &row.OrderedAt); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *OrderRepo) OnlineStatusByCustomer(ctx context.Context, customerName string) ([]dto.StatusRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, status, ordered_at
		FROM order_history_online
		WHERE customer_name = $1
		ORDER BY ordered_at DESC`, customerName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStatusRows(rows)
}

func (r *OrderRepo) OnsiteStatusByTable(ctx context.Context, tableID string) ([]dto.StatusRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, change_status, ordered_at
		FROM order_history_onsite
		WHERE table_id = $1
		ORDER BY ordered_at DESC`, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStatusRows(rows)
}

func scanStatusRows(rows pgx.Rows) ([]dto.StatusRow, error) {
	var results []dto.StatusRow
	for rows.Next() {
		var row dto.StatusRow
		if err := rows.Scan(&row.ID, &row.Status, &row.OrderedAt); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Summary feeds the admin dashboard. Prices are stored extended, so revenue
// is a plain SUM over both tables.
func (r *OrderRepo) Summary(ctx context.Context) (dto.AnalyticsSummary, error) {
	var summary dto.AnalyticsSummary
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT SUM(price) FROM order_history_online), 0) +
			COALESCE((SELECT SUM(price) FROM order_history_onsite), 0),
			(SELECT COUNT(*) FROM order_history_online) +
			(SELECT COUNT(*) FROM order_history_onsite),
			(SELECT COUNT(*) FROM order_history_online WHERE status = 'Pending')`,
	).Scan(&summary.TotalRevenue, &summary.TotalOrders, &summary.PendingOrders)
	if err != nil {
		return dto.AnalyticsSummary{}, err
	}
	return summary, nil
}

func (r *OrderRepo) OnlineProductsSold(ctx context.Context) ([]dto.ProductUnits, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_name, SUM(quantity)
		FROM order_history_online
		WHERE status = 'Delivered'
		GROUP BY product_name
		ORDER BY SUM(quantity) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProductUnits(rows)
}

func (r *OrderRepo) OnsiteProductsSold(ctx context.Context) ([]dto.ProductUnits, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_name, SUM(quantity)
		FROM order_history_onsite
		WHERE change_status = 'Served'
		GROUP BY product_name
		ORDER BY SUM(quantity) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProductUnits(rows)
}

func scanProductUnits(rows pgx.Rows) ([]dto.ProductUnits, error) {
	var results []dto.ProductUnits
	for rows.Next() {
		var row dto.ProductUnits
		if err := rows.Scan(&row.Name, &row.Units); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
