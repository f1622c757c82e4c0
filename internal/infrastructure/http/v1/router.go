package v1

import (
	"github.com/gin-gonic/gin"

	"salesdesk/internal/domain/catalogs/account"
	"salesdesk/internal/domain/catalogs/contact"
	"salesdesk/internal/domain/catalogs/lead"
	"salesdesk/internal/domain/documents/priceddoc"
	"salesdesk/internal/infrastructure/http/v1/handlers"
	"salesdesk/internal/infrastructure/http/v1/middleware"
	"salesdesk/internal/infrastructure/storage/postgres"
	"salesdesk/pkg/logger"
)

// RouterConfig holds the constructed services the router exposes.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Pool is the PostgreSQL pool, nil when running on the memory store
	Pool *postgres.Pool

	// Audit records change history; nil disables history endpoints
	Audit *postgres.AuditService

	// AuditHistorySize caps history responses
	AuditHistorySize int

	// Catalog services; nil disables the corresponding routes
	AccountService *account.Service
	ContactService *contact.Service
	LeadService    *lead.Service

	// PricedDocService serves both invoices and sales orders
	PricedDocService *priceddoc.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Actor())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		registerCatalogRoutes(apiV1, cfg)
		registerDocumentRoutes(apiV1, cfg)
	}

	return router
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	if cfg.AccountService != nil {
		handler := handlers.NewAccountHandler(baseHandler, cfg.AccountService)
		group := catalogs.Group("/accounts")
		RegisterCatalogRoutes(group, handler)
		registerHistoryRoute(group, baseHandler, cfg, "account")
	}

	if cfg.ContactService != nil {
		handler := handlers.NewContactHandler(baseHandler, cfg.ContactService)
		group := catalogs.Group("/contacts")
		RegisterCatalogRoutes(group, handler)
		registerHistoryRoute(group, baseHandler, cfg, "contact")
	}

	if cfg.LeadService != nil {
		handler := handlers.NewLeadHandler(baseHandler, cfg.LeadService)
		group := catalogs.Group("/leads")
		RegisterCatalogRoutes(group, handler)
		group.POST("/:id/status", handler.UpdateStatus)
		registerHistoryRoute(group, baseHandler, cfg, "lead")
	}
}

// registerDocumentRoutes registers invoice and sales order endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.PricedDocService == nil {
		return
	}

	docsGroup := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	{
		handler := handlers.NewPricedDocumentHandler(baseHandler, cfg.PricedDocService, priceddoc.KindInvoice)
		group := docsGroup.Group("/invoices")
		handler.RegisterRoutes(group)
		registerHistoryRoute(group, baseHandler, cfg, "invoice")
	}

	{
		handler := handlers.NewPricedDocumentHandler(baseHandler, cfg.PricedDocService, priceddoc.KindSalesOrder)
		group := docsGroup.Group("/sales-orders")
		handler.RegisterRoutes(group)
		registerHistoryRoute(group, baseHandler, cfg, "sales_order")
	}
}

func registerHistoryRoute(group *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, entityType string) {
	if cfg.Audit == nil {
		return
	}
	handler := handlers.NewAuditHandler(base, cfg.Audit, entityType, cfg.AuditHistorySize)
	group.GET("/:id/history", handler.History)
}
