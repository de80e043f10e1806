package cart

import (
	"context"

	"minishop-cart/internal/domain"
)

// NewItem is one product/quantity pair submitted at cart creation.
type NewItem struct {
	ProductID string
	Quantity  int
}

type Repository interface {
	// Create persists a cart and all of its items in one transaction.
	Create(ctx context.Context, userID string, items []NewItem) (*domain.Cart, error)
	// GetAll returns every cart with its items eagerly loaded.
	GetAll(ctx context.Context) ([]domain.Cart, error)
	// GetByUser returns the first cart found for the user, oldest first.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// Delete removes the cart; items are removed by cascade.
	Delete(ctx context.Context, cartID string) error
}
