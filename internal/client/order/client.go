package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"minishop-cart/internal/domain"
)

// Line is one order line submitted to the order service.
type Line struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Client talks to the external order service over HTTP.
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

// SubmitOrder asks the order service to create an order from the given lines.
// A non-success response maps to domain.ErrRemoteRejected; transport failures
// map to domain.ErrRemoteUnreachable.
func (c *Client) SubmitOrder(ctx context.Context, lines []Line) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(lines).
		Post("/create-order")
	if err != nil {
		return fmt.Errorf("%w: submit order: %v", domain.ErrRemoteUnreachable, err)
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
