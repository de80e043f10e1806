package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"minishop-cart/internal/domain"
)

// Client talks to the external product service over HTTP. Calls are
// best-effort request/response with no retries; a per-request timeout bounds
// each call in addition to the caller's context.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

// GetProduct fetches the display view for a product. A non-success response
// maps to domain.ErrNotFound so callers can absorb missing products; transport
// and decode failures map to domain.ErrRemoteUnreachable.
func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var out domain.Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/products/" + productID)
	if err != nil {
		return nil, fmt.Errorf("%w: get product %s: %v", domain.ErrRemoteUnreachable, productID, err)
	}
	if !resp.IsSuccess() {
		return nil, domain.ErrNotFound
	}
	return &out, nil
}

type updateStockRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateStock asks the product service to decrement stock by quantity. A
// non-success response carries only a reason string, surfaced wrapped in
// domain.ErrRemoteRejected.
func (c *Client) UpdateStock(ctx context.Context, productID string, quantity int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(updateStockRequest{ProductID: productID, Quantity: quantity}).
		Post("/api/products/update-stock")
	if err != nil {
		return fmt.Errorf("%w: update stock for product %s: %v", domain.ErrRemoteUnreachable, productID, err)
	}
	if !resp.IsSuccess() {
		reason := strings.TrimSpace(resp.String())
		if reason == "" {
			reason = resp.Status()
		}
		return fmt.Errorf("%w: %s", domain.ErrRemoteRejected, reason)
	}
	return nil
}
