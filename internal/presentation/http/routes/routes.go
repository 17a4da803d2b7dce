package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/otica-api/internal/config"
	domainRepo "github.com/sangkips/otica-api/internal/domain/repository"
	"github.com/sangkips/otica-api/internal/presentation/http/handler"
	"github.com/sangkips/otica-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Client       *handler.ClientHandler
	ServiceOrder *handler.ServiceOrderHandler
	FrameLens    *handler.FrameLensHandler
	Prescription *handler.PrescriptionHandler
	Payment      *handler.PaymentHandler
	Report       *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.IPRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		Log:  deps.Log,
	})

	v1 := router.Group("/api/v1")
	{
		registerClientRoutes(v1, h)
		registerServiceOrderRoutes(v1, h, idempotent)
		registerFrameLensRoutes(v1, h)
		registerPrescriptionRoutes(v1, h)
		registerPaymentRoutes(v1, h, idempotent)
		registerReportRoutes(v1, h)
	}

	return router
}

func registerClientRoutes(v1 *gin.RouterGroup, h *Handlers) {
	clients := v1.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerServiceOrderRoutes(v1 *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	orders := v1.Group("/service-orders")
	{
		orders.GET("", h.ServiceOrder.List)
		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("", idempotent, h.ServiceOrder.Create)
		orders.GET("/next-number", h.ServiceOrder.NextNumber)
		orders.GET("/statuses", h.ServiceOrder.Statuses)
		orders.GET("/:id", h.ServiceOrder.Get)
		orders.PUT("/:id", h.ServiceOrder.Update)
		orders.DELETE("/:id", h.ServiceOrder.Delete)
		orders.GET("/:id/frame-lens", h.FrameLens.ListByOrder)
		orders.GET("/:id/prescriptions", h.Prescription.ListByOrder)
		orders.GET("/:id/payments", h.Payment.ListByOrder)
	}
}

func registerFrameLensRoutes(v1 *gin.RouterGroup, h *Handlers) {
	frameLens := v1.Group("/frame-lens")
	{
		frameLens.POST("", h.FrameLens.Create)
		frameLens.GET("/:id", h.FrameLens.Get)
		frameLens.PUT("/:id", h.FrameLens.Update)
		frameLens.DELETE("/:id", h.FrameLens.Delete)
	}
}

func registerPrescriptionRoutes(v1 *gin.RouterGroup, h *Handlers) {
	prescriptions := v1.Group("/prescriptions")
	{
		prescriptions.POST("", h.Prescription.Create)
		prescriptions.POST("/derive", h.Prescription.Derive)
		prescriptions.GET("/options", h.Prescription.Options)
		prescriptions.GET("/:id", h.Prescription.Get)
		prescriptions.PUT("/:id", h.Prescription.Update)
		prescriptions.DELETE("/:id", h.Prescription.Delete)
	}
}

func registerPaymentRoutes(v1 *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	payments := v1.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.POST("", idempotent, h.Payment.Create)
		payments.GET("/options", h.Payment.Options)
		payments.GET("/:id", h.Payment.Get)
		payments.PUT("/:id", h.Payment.Update)
		payments.DELETE("/:id", h.Payment.Delete)
		payments.GET("/:id/receipt", h.Payment.Receipt)
		payments.POST("/:id/receipt/print", h.Payment.PrintReceipt)
	}

	v1.GET("/printer/status", h.Payment.PrinterStatus)
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/summary", h.Report.Summary)
	}
}
