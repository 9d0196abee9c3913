package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-catalog-api/internal/model"
)

type ShopRepository struct {
	pool *pgxpool.Pool
}

func NewShopRepository(pool *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{pool: pool}
}

func (r *ShopRepository) List(ctx context.Context) ([]model.Shop, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, city, address FROM shops ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	shops := make([]model.Shop, 0)
	for rows.Next() {
		var s model.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.Address); err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

func (r *ShopRepository) FindByID(ctx context.Context, id int64) (model.Shop, error) {
	var s model.Shop
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, city, address FROM shops WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.City, &s.Address)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Shop{}, model.ErrShopNotFound
	}
	if err != nil {
		return model.Shop{}, fmt.Errorf("find shop: %w", err)
	}
	return s, nil
}

func (r *ShopRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM shops WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check shop exists: %w", err)
	}
	return exists, nil
}

func (r *ShopRepository) Create(ctx context.Context, s *model.Shop) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO shops (name, city, address) VALUES ($1, $2, $3) RETURNING id`,
		s.Name, s.City, s.Address).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("create shop: %w", err)
	}
	return nil
}

func (r *ShopRepository) Update(ctx context.Context, s model.Shop) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE shops SET name = $2, city = $3, address = $4 WHERE id = $1`,
		s.ID, s.Name, s.City, s.Address)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShopNotFound
	}
	return nil
}

func (r *ShopRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShopNotFound
	}
	return nil
}
