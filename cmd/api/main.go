package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rsharma/fintrack/internal/config"
	"github.com/rsharma/fintrack/internal/handler"
	"github.com/rsharma/fintrack/internal/middleware"
	"github.com/rsharma/fintrack/internal/repository"
	"github.com/rsharma/fintrack/internal/scheduler"
	"github.com/rsharma/fintrack/internal/service"
	"github.com/rsharma/fintrack/internal/utils/email"
	"github.com/sirupsen/logrus"
)

func main() {
	// Local development convenience; real deployments set the environment.
	_ = godotenv.Load()

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
	if err := repository.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger, cfg, nil)
	h := handler.NewHandler(svc, logger)

	// EMI reminder scheduler, enabled only when SMTP is configured
	if cfg.SMTPConfigured() {
		sender := email.NewSender(cfg, logger)
		sched := scheduler.New(repo, sender, logger, cfg.ReminderSchedule, nil)
		if err := sched.Start(); err != nil {
			logger.Fatalf("Failed to start reminder scheduler: %v", err)
		}
		defer sched.Stop()
	} else {
		logger.Info("SMTP not configured, EMI reminders disabled")
	}

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/refresh", h.Refresh).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/verify", h.Verify).Methods("GET")
	authRouter.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	authRouter.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	authRouter.HandleFunc("/expenses/{id:[0-9]+}", h.UpdateExpense).Methods("PUT")
	authRouter.HandleFunc("/expenses/{id:[0-9]+}", h.DeleteExpense).Methods("DELETE")
	authRouter.HandleFunc("/income", h.CreateIncome).Methods("POST")
	authRouter.HandleFunc("/income", h.ListIncome).Methods("GET")
	authRouter.HandleFunc("/income/{id:[0-9]+}", h.UpdateIncome).Methods("PUT")
	authRouter.HandleFunc("/income/{id:[0-9]+}", h.DeleteIncome).Methods("DELETE")
	authRouter.HandleFunc("/emis", h.CreateEMI).Methods("POST")
	authRouter.HandleFunc("/emis", h.ListEMIs).Methods("GET")
	authRouter.HandleFunc("/emis/{id:[0-9]+}", h.UpdateEMI).Methods("PUT")
	authRouter.HandleFunc("/emis/{id:[0-9]+}", h.DeleteEMI).Methods("DELETE")
	authRouter.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	authRouter.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	authRouter.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	authRouter.HandleFunc("/calendar", h.Calendar).Methods("GET")
	authRouter.HandleFunc("/reports", h.Reports).Methods("GET")
	authRouter.HandleFunc("/reports/export", h.ExportReport).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
