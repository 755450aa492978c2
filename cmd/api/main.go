package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"supsindex-navigator/internal/config"
	"supsindex-navigator/internal/db"
	"supsindex-navigator/internal/gateway/payment"
	"supsindex-navigator/internal/httpserver"
	affiliationrepo "supsindex-navigator/internal/repository/affiliation"
	cartitemrepo "supsindex-navigator/internal/repository/cartitem"
	checkoutrepo "supsindex-navigator/internal/repository/checkout"
	discountrepo "supsindex-navigator/internal/repository/discount"
	orderrepo "supsindex-navigator/internal/repository/order"
	voucherrepo "supsindex-navigator/internal/repository/voucher"
	affiliationsvc "supsindex-navigator/internal/service/affiliation"
	cartsvc "supsindex-navigator/internal/service/cart"
	checkoutsvc "supsindex-navigator/internal/service/checkout"
	orderssvc "supsindex-navigator/internal/service/orders"
	vouchersvc "supsindex-navigator/internal/service/voucher"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	itemRepo := cartitemrepo.NewPostgres(dbpool)
	ordRepo := orderrepo.NewPostgres(dbpool)
	vchRepo := voucherrepo.NewPostgres(dbpool)
	affRepo := affiliationrepo.NewPostgres(dbpool)
	dscRepo := discountrepo.NewPostgres(dbpool)
	commitRepo := checkoutrepo.NewPostgres(dbpool)
	gateway := payment.NewInMemory()

	cartService := cartsvc.New(itemRepo, affRepo)
	ordersService := orderssvc.New(ordRepo, itemRepo, affRepo)
	checkoutService := checkoutsvc.New(itemRepo, ordRepo, dscRepo, vchRepo, commitRepo, gateway)
	voucherService := vouchersvc.New(vchRepo)
	affiliationService := affiliationsvc.New(affRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:        cartService,
		OrdersSvc:      ordersService,
		CheckoutSvc:    checkoutService,
		VoucherSvc:     voucherService,
		AffiliationSvc: affiliationService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
