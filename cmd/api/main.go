package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/shopspring/decimal"

	"github.com/yab-g4u/Ablack/config"
	"github.com/yab-g4u/Ablack/internal/cart"
	"github.com/yab-g4u/Ablack/internal/delivery/http/middleware"
	v1 "github.com/yab-g4u/Ablack/internal/delivery/http/v1"
	"github.com/yab-g4u/Ablack/internal/infrastructure/cache"
	postgresrepo "github.com/yab-g4u/Ablack/internal/repository/postgres"
	"github.com/yab-g4u/Ablack/internal/usecase"
	"github.com/yab-g4u/Ablack/internal/wishlist"
	"github.com/yab-g4u/Ablack/pkg/kvstore"
	"github.com/yab-g4u/Ablack/pkg/logger"
	"github.com/yab-g4u/Ablack/pkg/storage"
	"github.com/yab-g4u/Ablack/pkg/utils"
)

const (
	cartTTL   = 30 * 24 * time.Hour
	wizardTTL = 24 * time.Hour
)

func main() {
	cfg := config.LoadConfig()
	cfg.Validate()
	utils.SetSecret(cfg.JWTSecret)

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	pgxPool, err := postgresrepo.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Connected to PostgreSQL")

	// Repositories
	userRepo := postgresrepo.NewUserRepository(pgxPool)
	productRepo := postgresrepo.NewProductRepository(pgxPool)
	orderRepo := postgresrepo.NewOrderRepository(pgxPool)
	paymentRepo := postgresrepo.NewPaymentMethodRepository(pgxPool)
	wishlistRepo := postgresrepo.NewWishlistRepository(pgxPool)
	txManager := postgresrepo.NewTransactionManager(pgxPool)

	// Key-value store for client-scoped state: carts, local wishlists,
	// checkout wizards, visit markers.
	var kv kvstore.Store
	switch cfg.KVBackend {
	case "redis":
		redisStore, err := kvstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisStore.Close()
		kv = redisStore
		log.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis KV store")
	default:
		kv = kvstore.NewMemoryStore()
		log.Info().Msg("Using in-memory KV store")
	}

	// In-memory read cache for catalog lookups
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	shippingFee, err := decimal.NewFromString(cfg.ShippingFlatFee)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.ShippingFlatFee).Msg("Invalid SHIPPING_FLAT_FEE")
	}

	mux := http.NewServeMux()

	// Auth Module
	authUC := usecase.NewAuthUsecase(userRepo, txManager, kv, cfg.FrontendURL, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	authHandler := v1.NewAuthHandler(authUC, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry, cfg.Env == "production")

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(productRepo, memCache, cfg.CacheProductTTL, cfg.CacheCatalogTTL)
	catalogHandler := v1.NewCatalogHandler(catalogUC)

	// Cart Module
	cartStore := cart.NewStore(kv, cartTTL)
	cartHandler := v1.NewCartHandler(cartStore, catalogUC, cfg.MaxCartQuantity)

	// Order Module
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, txManager, shippingFee)
	orderHandler := v1.NewOrderHandler(orderUC)

	// Checkout Module
	checkoutUC := usecase.NewCheckoutUsecase(kv, cartStore, orderUC, shippingFee, wizardTTL)
	checkoutHandler := v1.NewCheckoutHandler(checkoutUC)

	// Payment Methods Module
	paymentUC := usecase.NewPaymentMethodUsecase(paymentRepo, txManager)
	paymentHandler := v1.NewPaymentMethodHandler(paymentUC)

	// Wishlist Module (local + account)
	localWishlist := wishlist.NewStore(kv)
	remoteWishlistUC := usecase.NewWishlistUsecase(wishlistRepo)
	wishlistHandler := v1.NewWishlistHandler(localWishlist, remoteWishlistUC)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.SignUp)
	mux.HandleFunc("POST /api/v1/auth/signin", authHandler.SignIn)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.SignOut)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("POST /api/v1/auth/reset-password", authHandler.ResetPassword)
	mux.Handle("GET /api/v1/auth/me", middleware.AuthMiddleware(http.HandlerFunc(authHandler.Me)))
	mux.Handle("GET /api/v1/auth/gate", middleware.OptionalAuth(http.HandlerFunc(authHandler.AuthGate)))

	// Profile
	mux.Handle("GET /api/v1/user/profile", middleware.AuthMiddleware(http.HandlerFunc(authHandler.GetProfile)))
	mux.Handle("PUT /api/v1/user/profile", middleware.AuthMiddleware(http.HandlerFunc(authHandler.UpdateProfile)))

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct)
	mux.HandleFunc("GET /api/v1/search", catalogHandler.Search)

	// Cart (works signed out via the client id cookie)
	mux.Handle("GET /api/v1/cart", middleware.OptionalAuth(http.HandlerFunc(cartHandler.GetCart)))
	mux.Handle("POST /api/v1/cart/items", middleware.OptionalAuth(http.HandlerFunc(cartHandler.AddItem)))
	mux.Handle("PATCH /api/v1/cart/items/{id}", middleware.OptionalAuth(http.HandlerFunc(cartHandler.UpdateQuantity)))
	mux.Handle("DELETE /api/v1/cart/items/{id}", middleware.OptionalAuth(http.HandlerFunc(cartHandler.RemoveItem)))

	// Checkout wizard
	mux.Handle("POST /api/v1/checkout", middleware.OptionalAuth(http.HandlerFunc(checkoutHandler.Start)))
	mux.Handle("GET /api/v1/checkout", middleware.OptionalAuth(http.HandlerFunc(checkoutHandler.Get)))
	mux.Handle("PUT /api/v1/checkout/shipping", middleware.OptionalAuth(http.HandlerFunc(checkoutHandler.UpdateShipping)))
	mux.Handle("PUT /api/v1/checkout/payment", middleware.OptionalAuth(http.HandlerFunc(checkoutHandler.UpdatePayment)))
	mux.Handle("POST /api/v1/checkout/validate-field", middleware.OptionalAuth(http.HandlerFunc(checkoutHandler.ValidateField)))
	mux.Handle("POST /api/v1/checkout/advance", middleware.OptionalAuth(http.HandlerFunc(checkoutHandler.Advance)))
	mux.Handle("POST /api/v1/checkout/back", middleware.OptionalAuth(http.HandlerFunc(checkoutHandler.Back)))
	mux.Handle("GET /api/v1/checkout/totals", middleware.OptionalAuth(http.HandlerFunc(checkoutHandler.Totals)))

	// Orders (Protected)
	mux.Handle("GET /api/v1/orders", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.GetMyOrders)))
	mux.Handle("GET /api/v1/orders/{id}", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.GetOrder)))
	mux.Handle("POST /api/v1/orders/{id}/cancel", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.CancelOrder)))

	// Payment Methods (Protected)
	mux.Handle("GET /api/v1/payment-methods", middleware.AuthMiddleware(http.HandlerFunc(paymentHandler.List)))
	mux.Handle("POST /api/v1/payment-methods", middleware.AuthMiddleware(http.HandlerFunc(paymentHandler.Create)))
	mux.Handle("PUT /api/v1/payment-methods/{id}", middleware.AuthMiddleware(http.HandlerFunc(paymentHandler.Update)))
	mux.Handle("DELETE /api/v1/payment-methods/{id}", middleware.AuthMiddleware(http.HandlerFunc(paymentHandler.Delete)))

	// Wishlist: local (anonymous-friendly) and account-backed
	mux.Handle("GET /api/v1/wishlist/local", middleware.OptionalAuth(http.HandlerFunc(wishlistHandler.GetLocal)))
	mux.Handle("POST /api/v1/wishlist/local/toggle", middleware.OptionalAuth(http.HandlerFunc(wishlistHandler.Toggle)))
	mux.Handle("GET /api/v1/wishlist", middleware.AuthMiddleware(http.HandlerFunc(wishlistHandler.GetMyWishlist)))
	mux.Handle("POST /api/v1/wishlist", middleware.AuthMiddleware(http.HandlerFunc(wishlistHandler.AddToWishlist)))
	mux.Handle("DELETE /api/v1/wishlist/{productId}", middleware.AuthMiddleware(http.HandlerFunc(wishlistHandler.RemoveFromWishlist)))

	// Uploads (avatar); skipped when object storage is not configured
	if cfg.StorageBucketName != "" {
		objStorage, err := storage.NewObjectStorage(
			context.Background(),
			cfg.StorageAccountID,
			cfg.StorageAccessKeyID,
			cfg.StorageAccessKeySecret,
			cfg.StorageBucketName,
			cfg.StoragePublicURL,
			cfg.StorageUploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		uploadHandler := v1.NewUploadHandler(objStorage, cfg.MaxUploadSizeMB)
		mux.Handle("POST /api/v1/upload/avatar", middleware.AuthMiddleware(http.HandlerFunc(uploadHandler.UploadAvatar)))
	} else {
		log.Warn().Msg("Object storage not configured, avatar uploads disabled")
	}

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler)

	addr := fmt.Sprintf(":%s", cfg.Port)

	// 50 req/s, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		50,
		100,
		time.Minute,
		3*time.Minute,
	)

	// CORS, client id cookie, request logger, rate limit, gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.ClientID(handler)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()
	log.Info().Msg("Server exited properly")
}
