package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-catalog-api/internal/model"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, category_id, name, quantity, price, owner_id, created_at
		 FROM products WHERE category_id = $1 ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Quantity, &p.Price, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, categoryID int64, id int64) (model.Product, error) {
	var p model.Product
	err := r.pool.QueryRow(ctx,
		`SELECT id, category_id, name, quantity, price, owner_id, created_at
		 FROM products WHERE id = $1 AND category_id = $2`, id, categoryID).
		Scan(&p.ID, &p.CategoryID, &p.Name, &p.Quantity, &p.Price, &p.OwnerID, &p.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, model.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (category_id, name, quantity, price, owner_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.CategoryID, p.Name, p.Quantity, p.Price, p.OwnerID, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update never touches owner_id: ownership is assigned at creation and
// immutable afterwards.
func (r *ProductRepository) Update(ctx context.Context, p model.Product) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET name = $3, quantity = $4, price = $5
		 WHERE id = $1 AND category_id = $2`,
		p.ID, p.CategoryID, p.Name, p.Quantity, p.Price)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, categoryID int64, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND category_id = $2`, id, categoryID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}
