package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"minishop-cart/internal/client/order"
	"minishop-cart/internal/domain"
	cartrepo "minishop-cart/internal/repository/cart"
)

// ErrEmptyCart is returned when the user has no cart, or a cart with no
// items. Nothing has been submitted downstream when it is returned.
var ErrEmptyCart = errors.New("no cart with items for user")

// Service converts a user's cart into an order: it submits the cart lines to
// the order service, decrements stock per item via the product service, and
// deletes the cart once everything succeeded.
//
// The flow is not atomic across services. A stock update that fails midway
// leaves the accepted order and the already-applied decrements in place, and
// the cart is only deleted after the last decrement. There is no compensation
// or retry; callers see which stage failed in the returned error.
type Service struct {
	carts    cartRepo
	orders   orderClient
	products productClient
	logger   *logrus.Logger
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Delete(ctx context.Context, cartID string) error
}

type orderClient interface {
	SubmitOrder(ctx context.Context, lines []order.Line) error
}

type productClient interface {
	UpdateStock(ctx context.Context, productID string, quantity int) error
}

func New(carts cartrepo.Repository, orders orderClient, products productClient, logger *logrus.Logger) *Service {
	return &Service{carts: carts, orders: orders, products: products, logger: logger}
}

// Checkout runs the flow for the given user. It returns ErrEmptyCart when
// there is nothing to check out, and otherwise an error naming the stage that
// failed.
func (s *Service) Checkout(ctx context.Context, userID string) error {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrEmptyCart
		}
		return fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return ErrEmptyCart
	}

	lines := make([]order.Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		// TODO: resolve the real unit price before submitting; the order
		// service currently receives a zero placeholder per line.
		lines = append(lines, order.Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     0,
		})
	}

	if err := s.orders.SubmitOrder(ctx, lines); err != nil {
		s.logger.WithField("cartId", cart.ID).Warnf("order submission failed: %v", err)
		return fmt.Errorf("submit order: %w", err)
	}

	// Sequential, in item order. Earlier decrements are not rolled back when
	// a later one fails: the order stays accepted and the cart stays present.
	for _, item := range cart.Items {
		if err := s.products.UpdateStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.WithFields(logrus.Fields{
				"cartId":    cart.ID,
				"productId": item.ProductID,
			}).Warnf("stock update failed after order was accepted: %v", err)
			return fmt.Errorf("update stock for product %s: %w", item.ProductID, err)
		}
	}

	if err := s.carts.Delete(ctx, cart.ID); err != nil {
		s.logger.WithField("cartId", cart.ID).Warnf("cart cleanup failed, order and stock already committed: %v", err)
		return fmt.Errorf("delete cart %s: %w", cart.ID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"cartId": cart.ID,
		"userId": userID,
		"items":  len(cart.Items),
	}).Info("checkout committed")
	return nil
}
