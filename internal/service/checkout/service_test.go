package checkout

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minishop-cart/internal/client/order"
	"minishop-cart/internal/domain"
)

type fakeCartRepo struct {
	cart      *domain.Cart
	getErr    error
	deleteErr error
	getCalls  int
	deleted   []string
}

func (f *fakeCartRepo) GetByUser(_ context.Context, _ string) (*domain.Cart, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.cart, nil
}

func (f *fakeCartRepo) Delete(_ context.Context, cartID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, cartID)
	return nil
}

type fakeOrderClient struct {
	err       error
	submitted [][]order.Line
}

func (f *fakeOrderClient) SubmitOrder(_ context.Context, lines []order.Line) error {
	f.submitted = append(f.submitted, lines)
	return f.err
}

type fakeProductClient struct {
	failOn  string
	failErr error
	updates []string
}

func (f *fakeProductClient) UpdateStock(_ context.Context, productID string, _ int) error {
	f.updates = append(f.updates, productID)
	if productID == f.failOn {
		return f.failErr
	}
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testCart() *domain.Cart {
	return &domain.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items: []domain.CartItem{
			{ID: "i1", CartID: "cart-1", ProductID: "p1", Quantity: 2},
			{ID: "i2", CartID: "cart-1", ProductID: "p2", Quantity: 1},
			{ID: "i3", CartID: "cart-1", ProductID: "p3", Quantity: 5},
		},
	}
}

func TestCheckout_NoCartIsTerminalWithoutSideEffects(t *testing.T) {
	carts := &fakeCartRepo{getErr: domain.ErrNotFound}
	orders := &fakeOrderClient{}
	products := &fakeProductClient{}
	svc := &Service{carts: carts, orders: orders, products: products, logger: testLogger()}

	err := svc.Checkout(context.Background(), "user-1")

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.submitted)
	assert.Empty(t, products.updates)
	assert.Empty(t, carts.deleted)
}

func TestCheckout_EmptyCartIsTerminalWithoutSideEffects(t *testing.T) {
	carts := &fakeCartRepo{cart: &domain.Cart{ID: "cart-1", UserID: "user-1"}}
	orders := &fakeOrderClient{}
	products := &fakeProductClient{}
	svc := &Service{carts: carts, orders: orders, products: products, logger: testLogger()}

	err := svc.Checkout(context.Background(), "user-1")

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.submitted)
	assert.Empty(t, products.updates)
	assert.Empty(t, carts.deleted)
}

func TestCheckout_FullCommit(t *testing.T) {
	carts := &fakeCartRepo{cart: testCart()}
	orders := &fakeOrderClient{}
	products := &fakeProductClient{}
	svc := &Service{carts: carts, orders: orders, products: products, logger: testLogger()}

	err := svc.Checkout(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, orders.submitted, 1)
	assert.Equal(t, []order.Line{
		{ProductID: "p1", Quantity: 2, Price: 0},
		{ProductID: "p2", Quantity: 1, Price: 0},
		{ProductID: "p3", Quantity: 5, Price: 0},
	}, orders.submitted[0])
	assert.Equal(t, []string{"p1", "p2", "p3"}, products.updates)
	assert.Equal(t, []string{"cart-1"}, carts.deleted)
}

func TestCheckout_OrderSubmissionFailureLeavesCartAndStock(t *testing.T) {
	carts := &fakeCartRepo{cart: testCart()}
	orders := &fakeOrderClient{err: domain.ErrRemoteUnreachable}
	products := &fakeProductClient{}
	svc := &Service{carts: carts, orders: orders, products: products, logger: testLogger()}

	err := svc.Checkout(context.Background(), "user-1")

	require.ErrorIs(t, err, domain.ErrRemoteUnreachable)
	assert.Contains(t, err.Error(), "submit order")
	assert.Empty(t, products.updates)
	assert.Empty(t, carts.deleted)
}

func TestCheckout_OrderRejectionIsTerminal(t *testing.T) {
	carts := &fakeCartRepo{cart: testCart()}
	orders := &fakeOrderClient{err: domain.ErrRemoteRejected}
	products := &fakeProductClient{}
	svc := &Service{carts: carts, orders: orders, products: products, logger: testLogger()}

	err := svc.Checkout(context.Background(), "user-1")

	require.ErrorIs(t, err, domain.ErrRemoteRejected)
	assert.Empty(t, products.updates)
	assert.Empty(t, carts.deleted)
}

func TestCheckout_MidListStockFailureIsNotRolledBack(t *testing.T) {
	carts := &fakeCartRepo{cart: testCart()}
	orders := &fakeOrderClient{}
	products := &fakeProductClient{failOn: "p2", failErr: domain.ErrRemoteRejected}
	svc := &Service{carts: carts, orders: orders, products: products, logger: testLogger()}

	err := svc.Checkout(context.Background(), "user-1")

	require.ErrorIs(t, err, domain.ErrRemoteRejected)
	assert.Contains(t, err.Error(), "update stock for product p2")
	// The order was already accepted and p1's decrement stays applied; p3 was
	// never attempted and the cart was not deleted.
	require.Len(t, orders.submitted, 1)
	assert.Equal(t, []string{"p1", "p2"}, products.updates)
	assert.Empty(t, carts.deleted)
}

func TestCheckout_CleanupFailureAfterCommit(t *testing.T) {
	carts := &fakeCartRepo{cart: testCart(), deleteErr: errors.New("db down")}
	orders := &fakeOrderClient{}
	products := &fakeProductClient{}
	svc := &Service{carts: carts, orders: orders, products: products, logger: testLogger()}

	err := svc.Checkout(context.Background(), "user-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete cart cart-1")
	// Order and stock are committed at this point; only the cart record is
	// stale.
	require.Len(t, orders.submitted, 1)
	assert.Equal(t, []string{"p1", "p2", "p3"}, products.updates)
}

func TestCheckout_TwiceForSamePresentCartRunsSequenceTwice(t *testing.T) {
	carts := &fakeCartRepo{cart: testCart(), deleteErr: errors.New("db down")}
	orders := &fakeOrderClient{}
	products := &fakeProductClient{}
	svc := &Service{carts: carts, orders: orders, products: products, logger: testLogger()}

	_ = svc.Checkout(context.Background(), "user-1")
	_ = svc.Checkout(context.Background(), "user-1")

	// Nothing deduplicates repeated checkouts: the order is submitted twice
	// and every stock decrement is applied twice.
	assert.Len(t, orders.submitted, 2)
	assert.Equal(t, []string{"p1", "p2", "p3", "p1", "p2", "p3"}, products.updates)
}

func TestCheckout_CartLoadFailure(t *testing.T) {
	carts := &fakeCartRepo{getErr: errors.New("db down")}
	svc := &Service{carts: carts, orders: &fakeOrderClient{}, products: &fakeProductClient{}, logger: testLogger()}

	err := svc.Checkout(context.Background(), "user-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyCart)
	assert.Contains(t, err.Error(), "load cart")
}
