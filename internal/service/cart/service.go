package cart

import (
	"context"
	"errors"
	"fmt"

	"minishop-cart/internal/domain"
	cartrepo "minishop-cart/internal/repository/cart"
)

// placeholderName is emitted for items whose product no longer resolves in
// the catalog so that enrichment never drops a line silently.
const placeholderName = "Unknown"

// ErrInvalidQuantity is returned when a submitted item quantity is not
// positive.
var ErrInvalidQuantity = errors.New("quantity must be positive")

type Service struct {
	repo     cartRepo
	products productClient
}

type cartRepo interface {
	Create(ctx context.Context, userID string, items []cartrepo.NewItem) (*domain.Cart, error)
	GetAll(ctx context.Context) ([]domain.Cart, error)
}

type productClient interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, products productClient) *Service {
	return &Service{repo: repo, products: products}
}

type CreateInput struct {
	UserID    string            `json:"userId"`
	CartItems []CreateItemInput `json:"cartItems"`
}

type CreateItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartView is a display-ready cart with items enriched from the product
// service.
type CartView struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	CartItems []CartItemView `json:"cartItems"`
}

type CartItemView struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Create persists a new cart and its items atomically. Product ids are not
// validated against the catalog.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Cart, error) {
	if in.UserID == "" {
		return nil, errors.New("userId required")
	}
	items := make([]cartrepo.NewItem, 0, len(in.CartItems))
	for _, item := range in.CartItems {
		if item.ProductID == "" {
			return nil, errors.New("productId required")
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		items = append(items, cartrepo.NewItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return s.repo.Create(ctx, in.UserID, items)
}

// List returns every cart with items enriched from the product service.
// A product the catalog no longer knows is absorbed into a placeholder row;
// a transport failure aborts the whole listing with a single error.
func (s *Service) List(ctx context.Context) ([]CartView, error) {
	carts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CartView, 0, len(carts))
	for _, cart := range carts {
		view := CartView{
			ID:        cart.ID,
			UserID:    cart.UserID,
			CartItems: make([]CartItemView, 0, len(cart.Items)),
		}
		for _, item := range cart.Items {
			product, err := s.products.GetProduct(ctx, item.ProductID)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				view.CartItems = append(view.CartItems, CartItemView{
					ID:          item.ID,
					ProductID:   item.ProductID,
					ProductName: placeholderName,
					Price:       0,
					Quantity:    item.Quantity,
				})
			case err != nil:
				return nil, fmt.Errorf("fetching product data: %w", err)
			default:
				view.CartItems = append(view.CartItems, CartItemView{
					ID:          item.ID,
					ProductID:   item.ProductID,
					ProductName: product.Name,
					Price:       product.Price,
					Quantity:    item.Quantity,
				})
			}
		}
		views = append(views, view)
	}

	return views, nil
}
