package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kennyy02/Samgyupmasaya/internal/product/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/product/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/internal/product/domain/models"
)

// ProductRepo serves one product set. The SQL for each set is fixed at
// construction from a sealed variant, so no request data ever reaches a
// table name.
type ProductRepo struct {
	pool       *pgxpool.Pool
	set        models.Set
	q          queries
	categories *CategoryRepo
}

type queries struct {
	list      string
	get       string
	insert    string
	delete    string
	search    string
	decrement string
	exists    string
	count     string
}

var onlineQueries = queries{
	list: `SELECT p.id, p.name, p.category_id, c.name, p.stock, p.price, p.description, p.image_url, p.created_at
		FROM products_online p LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.created_at DESC`,
	get: `SELECT p.id, p.name, p.category_id, c.name, p.stock, p.price, p.description, p.image_url, p.created_at
		FROM products_online p LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`,
	insert: `INSERT INTO products_online (name, category_id, stock, price, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
	delete:    `DELETE FROM products_online WHERE id = $1`,
	search:    `SELECT id, name FROM products_online WHERE name ILIKE $1`,
	decrement: `UPDATE products_online SET stock = stock - $1 WHERE id = $2 AND stock >= $1 RETURNING stock`,
	exists:    `SELECT EXISTS(SELECT 1 FROM products_online WHERE id = $1)`,
	count:     `SELECT COUNT(*) FROM products_online`,
}

var onsiteQueries = queries{
	list: `SELECT p.id, p.name, p.category_id, c.name, p.stock, p.price, p.description, p.image_url, p.created_at
		FROM products_onsite p LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.created_at DESC`,
	get: `SELECT p.id, p.name, p.category_id, c.name, p.stock, p.price, p.description, p.image_url, p.created_at
		FROM products_onsite p LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`,
	insert: `INSERT INTO products_onsite (name, category_id, stock, price, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
	delete:    `DELETE FROM products_onsite WHERE id = $1`,
	search:    `SELECT id, name FROM products_onsite WHERE name ILIKE $1`,
	decrement: `UPDATE products_onsite SET stock = stock - $1 WHERE id = $2 AND stock >= $1 RETURNING stock`,
	exists:    `SELECT EXISTS(SELECT 1 FROM products_onsite WHERE id = $1)`,
	count:     `SELECT COUNT(*) FROM products_onsite`,
}

func NewOnlineProductRepo(pool *pgxpool.Pool, categories *CategoryRepo) *ProductRepo {
	return &ProductRepo{pool: pool, set: models.SetOnline, q: onlineQueries, categories: categories}
}

func NewOnsiteProductRepo(pool *pgxpool.Pool, categories *CategoryRepo) *ProductRepo {
	return &ProductRepo{pool: pool, set: models.SetOnsite, q: onsiteQueries, categories: categories}
}

func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.pool.Query(ctx, r.q.list)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.CategoryName, &p.Stock, &p.Price, &p.Description, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (models.Product, error) {
	var p models.Product
	err := r.pool.QueryRow(ctx, r.q.get, id).Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.CategoryName, &p.Stock, &p.Price, &p.Description, &p.ImageURL, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, core.ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) Create(ctx context.Context, req dto.ProductRequest) (int64, error) {
	var categoryID *int64
	if req.CategoryName != "" {
		id, err := r.categories.GetOrCreate(ctx, req.CategoryName)
		if err != nil {
			return 0, err
		}
		categoryID = &id
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}

	var id int64
	err := r.pool.QueryRow(ctx, r.q.insert,
		req.Name, categoryID, stock, req.Price, nilIfEmpty(req.Description), nilIfEmpty(req.ImageURL),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	return id, nil
}

// Update writes only the provided fields. Column names come from a closed
// set; only the placeholder positions are computed.
func (r *ProductRepo) Update(ctx context.Context, id int64, req dto.ProductRequest) error {
	var sets []string
	var values []interface{}

	add := func(column string, value interface{}) {
		values = append(values, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(values)))
	}

	if req.Name != "" {
		add("name", req.Name)
	}
	if req.Stock != nil {
		add("stock", *req.Stock)
	}
	if req.Price > 0 {
		add("price", req.Price)
	}
	if req.Description != "" {
		add("description", req.Description)
	}
	if req.ImageURL != "" {
		add("image_url", req.ImageURL)
	}
	if req.CategoryName != "" {
		categoryID, err := r.categories.GetOrCreate(ctx, req.CategoryName)
		if err != nil {
			return err
		}
		add("category_id", categoryID)
	}

	if len(sets) == 0 {
		return fmt.Errorf("%w: no fields to update", core.ErrValidation)
	}

	table := "products_online"
	if r.set == models.SetOnsite {
		table = "products_onsite"
	}
	values = append(values, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(values))

	tag, err := r.pool.Exec(ctx, query, values...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, r.q.delete, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) SearchByName(ctx context.Context, pattern string) ([]models.SearchResult, error) {
	rows, err := r.pool.Query(ctx, r.q.search, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		result := models.SearchResult{Type: string(r.set)}
		if err := rows.Scan(&result.ID, &result.Name); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// DecrementStock is a single conditional update: the row is only touched
// when enough stock remains, which closes the read-then-write race between
// concurrent decrements.
func (r *ProductRepo) DecrementStock(ctx context.Context, id int64, quantity int) (int, error) {
	var newStock int
	err := r.pool.QueryRow(ctx, r.q.decrement, quantity, id).Scan(&newStock)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if existsErr := r.pool.QueryRow(ctx, r.q.exists, id).Scan(&exists); existsErr != nil {
			return 0, existsErr
		}
		if !exists {
			return 0, core.ErrProductNotFound
		}
		return 0, core.ErrInsufficientStock
	}
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, r.q.count).Scan(&count)
	return count, err
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
