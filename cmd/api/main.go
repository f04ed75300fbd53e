package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/mukizafabrice/Unguka-sub001/internal/config"
	"github.com/mukizafabrice/Unguka-sub001/internal/handler"
	"github.com/mukizafabrice/Unguka-sub001/internal/integrations/rates"
	"github.com/mukizafabrice/Unguka-sub001/internal/middleware"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
	"github.com/mukizafabrice/Unguka-sub001/internal/repository"
	"github.com/mukizafabrice/Unguka-sub001/internal/scheduler"
	"github.com/mukizafabrice/Unguka-sub001/internal/service"
	"github.com/mukizafabrice/Unguka-sub001/internal/utils/email"
	"github.com/mukizafabrice/Unguka-sub001/migrations"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Run migrations
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatalf("Failed to set migration dialect: %v", err)
	}
	if err := goose.Up(db, "."); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, logger, cfg, mailer)
	h := handler.NewHandler(svc, logger)
	ratesClient := rates.NewClient(cfg, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")
	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}
	// Exchange rate endpoint (informational; ledgers stay in RWF)
	if ratesClient != nil {
		r.HandleFunc("/exchange-rate", h.ExchangeRate(ratesClient)).Methods("GET")
	}

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/payments/summary", h.PaymentSummary).Methods("GET")
	authRouter.HandleFunc("/payments/process", h.ProcessPayment).Methods("POST")
	authRouter.HandleFunc("/fees", h.ListFees).Methods("GET")
	authRouter.HandleFunc("/loans", h.ListLoans).Methods("GET")
	authRouter.HandleFunc("/productions", h.ListProductions).Methods("GET")

	// Manager routes
	managerRouter := authRouter.PathPrefix("/").Subrouter()
	managerRouter.Use(middleware.RequireRole(models.RoleManager))
	managerRouter.HandleFunc("/fees", h.CreateFee).Methods("POST")
	managerRouter.HandleFunc("/loans", h.CreateLoan).Methods("POST")
	managerRouter.HandleFunc("/productions", h.CreateProduction).Methods("POST")
	managerRouter.HandleFunc("/fee-types", h.CreateFeeType).Methods("POST")
	managerRouter.HandleFunc("/seasons", h.CreateSeason).Methods("POST")

	// Start scheduled jobs
	sched, err := scheduler.New(svc, logger, cfg)
	if err != nil {
		logger.Fatalf("Failed to create scheduler: %v", err)
	}
	sched.Start()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")
	sched.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown error: %v", err)
	}
}
