package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"minishop-cart/internal/domain"
	cartsvc "minishop-cart/internal/service/cart"
	checkoutsvc "minishop-cart/internal/service/checkout"
)

// Deps carries the services the router depends on.
type Deps struct {
	CartSvc     CartService
	CheckoutSvc CheckoutService
}

type CartService interface {
	Create(ctx context.Context, in cartsvc.CreateInput) (*domain.Cart, error)
	List(ctx context.Context) ([]cartsvc.CartView, error)
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID string) error
}

type createCartRequest struct {
	UserID    string                  `json:"userId" binding:"required,uuid"`
	CartItems []createCartItemRequest `json:"cartItems" binding:"dive"`
}

type createCartItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

func createCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := cartsvc.CreateInput{UserID: req.UserID}
		for _, item := range req.CartItems {
			in.CartItems = append(in.CartItems, cartsvc.CreateItemInput{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		cart, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, cartsvc.ErrInvalidQuantity) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Location", "/api/carts/"+cart.ID)
		c.JSON(http.StatusCreated, gin.H{"id": cart.ID})
	}
}

func listCartsHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if views == nil {
			views = []cartsvc.CartView{}
		}
		c.JSON(http.StatusOK, views)
	}
}

func createOrderHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")
		if _, err := uuid.Parse(userID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId must be a valid uuid"})
			return
		}

		if err := svc.Checkout(c.Request.Context(), userID); err != nil {
			if errors.Is(err, checkoutsvc.ErrEmptyCart) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order created"})
	}
}
