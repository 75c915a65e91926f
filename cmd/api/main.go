package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/infra/database"
	"github.com/decomly/lead-broker/internal/infra/http/handlers"
	"github.com/decomly/lead-broker/internal/infra/http/middleware"
	"github.com/decomly/lead-broker/internal/infra/integration/crm"
	"github.com/decomly/lead-broker/internal/infra/integration/identity"
	"github.com/decomly/lead-broker/internal/infra/integration/payment"
	"github.com/decomly/lead-broker/internal/infra/queue"
	"github.com/decomly/lead-broker/internal/infra/ratelimit"
	"github.com/decomly/lead-broker/internal/usecase"
)

type config struct {
	Port                 string
	DatabaseURL          string
	RedisAddr            string
	RedisPassword        string
	RabbitMQURL          string
	AuthAPIURL           string
	AuthAPIKey           string
	PaymentAPIURL        string
	PaymentAPIKey        string
	PaymentWebhookSecret string
	SiteOrigin           string
	AdminEmails          []string
	CRMAPIURL            string
	CRMAPIKey            string
	LogLevel             string
}

func loadConfig() config {
	cfg := config{
		Port:                 os.Getenv("PORT"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:          os.Getenv("RABBITMQ_URL"),
		AuthAPIURL:           os.Getenv("AUTH_API_URL"),
		AuthAPIKey:           os.Getenv("AUTH_API_KEY"),
		PaymentAPIURL:        os.Getenv("PAYMENT_API_URL"),
		PaymentAPIKey:        os.Getenv("PAYMENT_API_KEY"),
		PaymentWebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		SiteOrigin:           os.Getenv("SITE_ORIGIN"),
		CRMAPIURL:            os.Getenv("CRM_API_URL"),
		CRMAPIKey:            os.Getenv("CRM_API_KEY"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	for _, email := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if email = strings.TrimSpace(email); email != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, email)
		}
	}
	return cfg
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = parsed
	}
	return zapCfg.Build()
}

func main() {
	godotenv.Load()
	cfg := loadConfig()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional: without it the rate limiter fails open.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()
	} else {
		logger.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatal("rabbitmq connection failed", zap.Error(err))
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	vendorRepo := database.NewVendorRepository(db)
	purchaseRepo := database.NewPurchaseRepository(db)

	// 2. Gateways and adapters
	paymentClient := payment.NewClient(cfg.PaymentAPIKey, cfg.PaymentAPIURL)
	identityClient := identity.NewClient(cfg.AuthAPIKey, cfg.AuthAPIURL)
	crmClient := crm.NewClient(cfg.CRMAPIKey, cfg.CRMAPIURL)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	limiter := ratelimit.New(rdb, logger)

	// 3. Worker (drains the event queue into the CRM)
	worker := queue.NewWorker(rabbitMQ.Ch, crmClient, logger)
	go worker.Start(queue.QueueName)

	// 4. Use cases
	captureQuoteUC := usecase.NewCaptureQuoteUseCase(leadRepo, producer, logger)
	signupVendorUC := usecase.NewSignupVendorUseCase(vendorRepo)
	leadStatusUC := usecase.NewUpdateLeadStatusUseCase(leadRepo)
	vendorStatusUC := usecase.NewUpdateVendorStatusUseCase(vendorRepo)
	marketplaceUC := usecase.NewListMarketplaceUseCase(leadRepo)
	purchasesUC := usecase.NewListPurchasesUseCase(purchaseRepo)
	outcomeUC := usecase.NewRecordOutcomeUseCase(purchaseRepo, vendorRepo, logger)
	checkoutUC := usecase.NewCreateCheckoutUseCase(leadRepo, purchaseRepo, paymentClient, cfg.SiteOrigin, logger)
	reconcileUC := usecase.NewReconcilePaymentUseCase(purchaseRepo, leadRepo, vendorRepo, producer, logger)

	// 5. Handlers
	quoteHandler := handlers.NewQuoteHandler(captureQuoteUC, logger)
	vendorHandler := handlers.NewVendorHandler(signupVendorUC, logger)
	adminHandler := handlers.NewAdminHandler(leadStatusUC, vendorStatusUC, leadRepo, vendorRepo, logger)
	dashboardHandler := handlers.NewDashboardHandler(marketplaceUC, purchasesUC, outcomeUC, logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUC, logger)
	webhookHandler := handlers.NewWebhookHandler(reconcileUC, cfg.PaymentWebhookSecret, logger)
	healthHandler := handlers.NewHealthHandler(db, rdb, rabbitMQ.Conn, cfg.PaymentWebhookSecret != "")

	guard := middleware.NewGuard(identityClient, vendorRepo, cfg.AdminEmails, logger)
	if len(cfg.AdminEmails) == 0 {
		logger.Warn("ADMIN_EMAILS not set, admin routes will reject every request")
	}

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.SiteOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// The processor signs its own calls; the browser-origin gate must
	// not apply here.
	r.Post("/payments/webhook", webhookHandler.Handle)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SameOrigin(cfg.SiteOrigin))

		r.With(middleware.RateLimit(limiter, ratelimit.PublicForm)).
			Post("/quote", quoteHandler.Handle)

		r.Group(func(r chi.Router) {
			r.Use(guard.RequireSession)
			r.Use(middleware.RateLimit(limiter, ratelimit.Signup))
			r.Post("/providers/signup", vendorHandler.Signup)
		})

		r.Group(func(r chi.Router) {
			r.Use(guard.RequireAdmin)
			r.Use(middleware.RateLimit(limiter, ratelimit.AdminAPI))
			r.Patch("/leads/{id}/status", adminHandler.UpdateLeadStatus)
			r.Get("/admin/leads", adminHandler.ListLeads)
			r.Get("/admin/vendors", adminHandler.ListVendors)
			r.Patch("/admin/vendors/{id}/status", adminHandler.UpdateVendorStatus)
		})

		r.Group(func(r chi.Router) {
			r.Use(guard.RequireVendor)
			r.Get("/dashboard/purchases", dashboardHandler.ListPurchases)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(limiter, ratelimit.DashboardAPI))
				r.Get("/dashboard/leads", dashboardHandler.ListLeads)
				r.Patch("/dashboard/purchases/{id}/outcome", dashboardHandler.UpdateOutcome)
				r.Post("/dashboard/checkout", checkoutHandler.Handle)
			})
		})
	})

	logger.Info("lead broker API listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
