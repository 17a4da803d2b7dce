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

	"github.com/gin-gonic/gin"
	"github.com/sangkips/otica-api/internal/application/service"
	"github.com/sangkips/otica-api/internal/config"
	domainRepo "github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/internal/infrastructure/cache"
	"github.com/sangkips/otica-api/internal/infrastructure/database"
	"github.com/sangkips/otica-api/internal/infrastructure/repository"
	"github.com/sangkips/otica-api/internal/logger"
	"github.com/sangkips/otica-api/internal/presentation/http/handler"
	"github.com/sangkips/otica-api/internal/presentation/http/middleware"
	"github.com/sangkips/otica-api/internal/presentation/http/routes"
	"github.com/sangkips/otica-api/pkg/comprovante"
	"github.com/sangkips/otica-api/pkg/printer"
	"go.uber.org/zap"
)

const idempotencySweepInterval = time.Hour

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(cfg.App.Name, cfg.App.Env, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, zl); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	orderRepo := repository.NewServiceOrderRepository(db)
	frameLensRepo := repository.NewFrameLensRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	reportCache := cache.New(ctx, cfg.Redis, zl)
	defer reportCache.Close()

	// Initialize thermal printer
	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		zl.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	formatter := comprovante.NewFormatter(comprovante.Header{
		ShopName: cfg.Shop.Name,
		CNPJ:     cfg.Shop.CNPJ,
		Address:  cfg.Shop.Address,
		Phone:    cfg.Shop.Phone,
	}, cfg.Shop.CountryCode)

	// Initialize services
	clientService := service.NewClientService(clientRepo, zl)
	orderService := service.NewServiceOrderService(orderRepo, clientRepo, zl)
	frameLensService := service.NewFrameLensService(frameLensRepo, orderRepo, zl)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo, orderRepo, zl)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, zl)
	receiptService := service.NewReceiptService(
		paymentRepo,
		frameLensRepo,
		thermalPrinter,
		cfg.Printer.Type,
		cfg.Printer.CharWidth,
		formatter,
		cfg.App.Location(),
		zl,
	)
	reportService := service.NewReportService(reportRepo, reportCache, cfg.Redis.ReportTTL, zl)
	clientService.UseReports(reportService)
	orderService.UseReports(reportService)
	prescriptionService.UseReports(reportService)
	paymentService.UseReports(reportService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Client:       handler.NewClientHandler(clientService),
		ServiceOrder: handler.NewServiceOrderHandler(orderService),
		FrameLens:    handler.NewFrameLensHandler(frameLensService),
		Prescription: handler.NewPrescriptionHandler(prescriptionService),
		Payment:      handler.NewPaymentHandler(paymentService, receiptService),
		Report:       handler.NewReportHandler(reportService),
	}

	rateLimiter := middleware.NewIPRateLimiter(
		middleware.RateLimiterFromRequests(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             zl,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo, zl)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown failed", zap.Error(err))
	}
}

// sweepIdempotencyKeys drops expired keys until ctx is done.
func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, zl *zap.Logger) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				zl.Warn("failed to delete expired idempotency keys", zap.Error(err))
				continue
			}
			if n > 0 {
				zl.Debug("expired idempotency keys deleted", zap.Int64("count", n))
			}
		}
	}
}
