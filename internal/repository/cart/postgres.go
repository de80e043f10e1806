package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"minishop-cart/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, userID string, items []NewItem) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cart := domain.Cart{
		ID:     uuid.New().String(),
		UserID: userID,
	}
	if err := tx.QueryRow(ctx, `
INSERT INTO carts (id, user_id)
VALUES ($1, $2)
RETURNING created_at
`, cart.ID, cart.UserID).Scan(&cart.CreatedAt); err != nil {
		return nil, err
	}

	for _, in := range items {
		item := domain.CartItem{
			ID:        uuid.New().String(),
			CartID:    cart.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
		}
		if err := tx.QueryRow(ctx, `
INSERT INTO cart_items (id, cart_id, product_id, quantity)
VALUES ($1, $2, $3, $4)
RETURNING created_at
`, item.ID, item.CartID, item.ProductID, item.Quantity).Scan(&item.CreatedAt); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) GetAll(ctx context.Context) ([]domain.Cart, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, user_id::text, created_at
FROM carts
ORDER BY created_at ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carts []domain.Cart
	byID := map[string]int{}
	for rows.Next() {
		var cart domain.Cart
		if err := rows.Scan(&cart.ID, &cart.UserID, &cart.CreatedAt); err != nil {
			return nil, err
		}
		byID[cart.ID] = len(carts)
		carts = append(carts, cart)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return carts, nil
	}

	itemRows, err := r.pool.Query(ctx, `
SELECT id::text, cart_id::text, product_id::text, quantity, created_at
FROM cart_items
ORDER BY created_at ASC
`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.CartItem
		if err := itemRows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, err
		}
		if idx, ok := byID[item.CartID]; ok {
			carts[idx].Items = append(carts[idx].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return carts, nil
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, `
SELECT id::text, user_id::text, created_at
FROM carts
WHERE user_id = $1
ORDER BY created_at ASC
LIMIT 1
`, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, cart_id::text, product_id::text, quantity, created_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at ASC
`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *postgresRepo) Delete(ctx context.Context, cartID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
