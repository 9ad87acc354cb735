package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/restroiq/crm-api/internal/infra/config"
	"github.com/restroiq/crm-api/internal/infra/database"
	"github.com/restroiq/crm-api/internal/infra/http/handlers"
	"github.com/restroiq/crm-api/internal/infra/http/middleware"
	"github.com/restroiq/crm-api/internal/infra/logger"
	"github.com/restroiq/crm-api/internal/infra/mail"
	"github.com/restroiq/crm-api/internal/infra/queue"
	"github.com/restroiq/crm-api/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.Environment)

	// 1. Record store: Postgres for the shared deployment, SQLite for the
	// single-machine one. Same repository interfaces either way.
	var (
		db       *sql.DB
		leadRepo usecase.LeadRepository
		fuRepo   usecase.FollowUpRepository
	)
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err = database.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			logger.Log.Fatalf("postgres: %v", err)
		}
		leadRepo = database.NewLeadRepository(db)
		fuRepo = database.NewFollowUpRepository(db)
	case config.DriverSQLite:
		db, err = database.NewSQLiteConnection(cfg.SQLitePath)
		if err != nil {
			logger.Log.Fatalf("sqlite: %v", err)
		}
		leadRepo = database.NewLocalLeadRepository(db)
		fuRepo = database.NewLocalFollowUpRepository(db)
	}
	defer db.Close()
	logger.Log.Infof("record store ready (driver=%s)", cfg.StorageDriver)

	// 2. Optional side channels. Leaving them unconfigured just disables
	// them; the CRM itself never depends on either.
	var events usecase.EventProducer
	var amqpConn *amqp.Connection
	if cfg.AMQPURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			logger.Log.Fatalf("rabbitmq: %v", err)
		}
		defer rabbit.Close()
		amqpConn = rabbit.Conn
		events = queue.NewProducer(rabbit.Conn, rabbit.Ch)
		logger.Log.Info("lead event producer ready")
	}

	var mailer usecase.AlertMailer
	if cfg.MailHost != "" {
		mailer = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailUser)
		logger.Log.Info("conversion alert mailer ready")
	}

	// 3. Use cases.
	listUC := usecase.NewListLeadsUseCase(leadRepo)
	createUC := usecase.NewCreateLeadUseCase(leadRepo, events)
	updateUC := usecase.NewUpdateLeadUseCase(leadRepo)
	deleteUC := usecase.NewDeleteLeadUseCase(leadRepo)
	dueTodayUC := usecase.NewDueTodayUseCase(leadRepo)
	logFollowUpUC := usecase.NewLogFollowUpUseCase(leadRepo, fuRepo, events, mailer, cfg.SalesAlertEmail)
	statsUC := usecase.NewDashboardStatsUseCase(leadRepo)

	// 4. Handlers.
	leadHandler := handlers.NewLeadHandler(leadRepo, listUC, createUC, updateUC, deleteUC, dueTodayUC)
	followUpHandler := handlers.NewFollowUpHandler(fuRepo, logFollowUpUC)
	dashboardHandler := handlers.NewDashboardHandler(statsUC)
	healthHandler := handlers.NewHealthHandler(db, amqpConn)

	// 5. Router.
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leadHandler.HandleList)
			r.Post("/", leadHandler.HandleCreate)
			r.Get("/due-today", leadHandler.HandleDueToday)
			r.Get("/{id}", leadHandler.HandleGet)
			r.Put("/{id}", leadHandler.HandleUpdate)
			r.Delete("/{id}", leadHandler.HandleDelete)
		})
		r.Route("/follow-ups", func(r chi.Router) {
			r.Post("/", followUpHandler.HandleLog)
			r.Get("/lead/{leadId}", followUpHandler.HandleListByLead)
		})
		r.Get("/dashboard/stats", dashboardHandler.HandleStats)
	})
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	logger.Log.Infof("RestroIQ CRM API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Fatalf("server: %v", err)
	}
}
