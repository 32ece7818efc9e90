package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/laptop_shop/internal/config"
	"github.com/Skotchmaster/laptop_shop/internal/es"
	"github.com/Skotchmaster/laptop_shop/internal/httpserver"
	"github.com/Skotchmaster/laptop_shop/internal/logging"
	"github.com/Skotchmaster/laptop_shop/internal/mail"
	authmw "github.com/Skotchmaster/laptop_shop/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/laptop_shop/internal/middleware/logging"
	"github.com/Skotchmaster/laptop_shop/internal/mykafka"
	"github.com/Skotchmaster/laptop_shop/internal/repo"
	"github.com/Skotchmaster/laptop_shop/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	prod := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	sender, err := mail.NewSMTPSender(configuration)
	if err != nil {
		log.Fatalf("mail init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	gormRepo := &repo.GormRepo{DB: db}

	authSvc := &service.AuthService{Repo: gormRepo, Mail: sender, JWTSecret: jwtSecret}
	cartSvc := &service.CartService{Repo: gormRepo}
	orderSvc := &service.OrderService{Repo: gormRepo}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	addressSvc := &service.AddressService{Repo: gormRepo}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:     &httpserver.AuthHandler{Svc: authSvc, Producer: prod},
		CartHandler:     &httpserver.CartHandler{Svc: cartSvc, Producer: prod},
		OrderHandler:    &httpserver.OrderHandler{Svc: orderSvc, Producer: prod},
		ProductHandler:  &httpserver.ProductHandler{Svc: catalogSvc, Producer: prod},
		CategoryHandler: &httpserver.CategoryHandler{Svc: catalogSvc},
		CouponHandler:   &httpserver.CouponHandler{Svc: catalogSvc},
		WishlistHandler: &httpserver.WishlistHandler{Svc: catalogSvc},
		ReviewHandler:   &httpserver.ReviewHandler{Svc: catalogSvc},
		AddressHandler:  &httpserver.AddressHandler{Svc: addressSvc},
		SearchHandler:   &httpserver.SearchHandler{ES: esClient, Index: "products"},
		Auth:            authmw.New(jwtSecret),
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
