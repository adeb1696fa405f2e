// main.go
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

	"motohub/config"
	"motohub/controllers"
	"motohub/middleware"
	"motohub/repository"
	"motohub/routes"
	"motohub/utils"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	controllers.RequestTimeout = cfg.RequestTimeout
	middleware.StoreTimeout = cfg.RequestTimeout

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := utils.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		cancel()
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	db := client.Database(cfg.DBName)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()
	log.Printf("Connected to MongoDB database %s", cfg.DBName)

	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	wishlist := repository.NewWishlistRepository(db)
	payments := repository.NewPaymentRepository(db)
	idempotency := repository.NewIdempotencyRepository(db)

	tokens := utils.NewTokenIssuer(cfg.JWTSecret)
	if cfg.StripeKey == "" {
		log.Println("STRIPE_SECRET_KEY is not set; payment intents will fail")
	}
	var notifier utils.Notifier = utils.NoopNotifier{}
	if cfg.PostmarkToken != "" {
		notifier = utils.NewEmailService(cfg.PostmarkToken, cfg.EmailSender)
	}

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router,
		routes.Controllers{
			Users:    controllers.NewUserController(users, tokens),
			Products: controllers.NewProductController(products, orders),
			Orders:   controllers.NewOrderController(orders),
			Wishlist: controllers.NewWishlistController(wishlist),
			Payments: controllers.NewPaymentController(payments, orders, utils.NewStripePayments(cfg.StripeKey), notifier),
		},
		routes.Guards{Tokens: tokens, Users: users, Idempotency: idempotency},
	)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", controllers.OrderIDHeader, controllers.VerifyHeader, middleware.IdempotencyKeyHeader},
	})
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := c.Handler(limiter.Limit(middleware.SecurityHeaders(middleware.Logging(router))))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("MotoHub server is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}
	log.Println("Server stopped")
}
