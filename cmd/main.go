package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"meatadmin/config"
	"meatadmin/controllers"
	"meatadmin/database"
	"meatadmin/lifecycle"
	"meatadmin/realtime"
	"meatadmin/routes"
	"meatadmin/stats"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := database.NewStore(ctx, cfg)
	if err != nil {
		logger.Fatal("MongoDB connection failed", zap.Error(err))
	}
	defer store.Disconnect(context.Background())
	logger.Info("Connected to MongoDB", zap.String("database", cfg.DBName))

	hub := realtime.NewHub(logger)
	aggregator := stats.NewAggregator(store, logger, cfg.RecentOrdersLimit)
	aggregator.OnUpdate(func(d stats.Dashboard) {
		hub.Broadcast(d)
	})
	if err := aggregator.Start(ctx); err != nil {
		logger.Fatal("collection watch failed", zap.Error(err))
	}
	defer aggregator.Stop()
	defer hub.Close()

	var onDelivered lifecycle.CreditFunc
	if cfg.WalletAutoCredit {
		credit := lifecycle.NewDeliveryCredit(store.Orders, store.Users, store.WalletLogs, logger)
		onDelivered = credit.Credit
		logger.Info("automatic wallet crediting enabled")
	}
	manager := lifecycle.NewManager(store.Orders, logger, onDelivered)

	secret := []byte(cfg.JWTSecret)
	deps := routes.Deps{
		Store:     store,
		JWTSecret: secret,
		Hub:       hub,
		Auth:      controllers.NewAuthController(store, secret, logger),
		Products:  controllers.NewProductController(store, logger),
		Orders:    controllers.NewOrderController(store, manager, logger),
		Users:     controllers.NewUserController(store, logger),
		Dashboard: controllers.NewDashboardController(aggregator),
		Reports:   controllers.NewReportController(aggregator, logger),
		Wallet:    controllers.NewWalletController(store, aggregator, logger),
	}

	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	routes.Register(r, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	return logger
}
