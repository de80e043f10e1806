package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"minishop-cart/internal/client/order"
	"minishop-cart/internal/client/product"
	"minishop-cart/internal/config"
	"minishop-cart/internal/db"
	"minishop-cart/internal/httpserver"
	"minishop-cart/internal/migrate"
	cartrepo "minishop-cart/internal/repository/cart"
	cartsvc "minishop-cart/internal/service/cart"
	checkoutsvc "minishop-cart/internal/service/checkout"
)

func main() {
	cfg := config.FromEnv()
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	if err := migrate.Apply(ctx, dbpool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	cartRepo := cartrepo.NewPostgres(dbpool)
	productClient := product.NewClient(cfg.ProductServiceURL, cfg.RequestTimeout)
	orderClient := order.NewClient(cfg.OrderServiceURL, cfg.RequestTimeout)
	cartService := cartsvc.New(cartRepo, productClient)
	checkoutService := checkoutsvc.New(cartRepo, orderClient, productClient, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Errorf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	} else {
		logger.Info("server stopped")
	}
}
