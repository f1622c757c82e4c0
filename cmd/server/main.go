// Package main is the entry point for the salesdesk API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salesdesk/internal/core/entity"
	"salesdesk/internal/core/id"
	"salesdesk/internal/core/tx"
	"salesdesk/internal/domain"
	"salesdesk/internal/domain/audit"
	"salesdesk/internal/domain/catalogs/account"
	"salesdesk/internal/domain/catalogs/contact"
	"salesdesk/internal/domain/catalogs/lead"
	"salesdesk/internal/domain/documents/priceddoc"
	v1 "salesdesk/internal/infrastructure/http/v1"
	"salesdesk/internal/infrastructure/storage/memory"
	"salesdesk/internal/infrastructure/storage/postgres"
	"salesdesk/internal/infrastructure/storage/postgres/catalog_repo"
	"salesdesk/internal/infrastructure/storage/postgres/document_repo"
	"salesdesk/internal/platform/config"
	"salesdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: !cfg.IsProduction,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Infow("starting salesdesk server", "store", cfg.Store)

	routerCfg := v1.RouterConfig{
		Logger:           log,
		AuditHistorySize: cfg.AuditHistorySize,
	}

	var docRepo priceddoc.Repository
	var txManager tx.Manager

	switch cfg.Store {
	case config.StorePostgres:
		poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
		poolCfg.MaxConns = cfg.DBMaxConns
		poolCfg.MinConns = cfg.DBMinConns
		poolCfg.MaxConnLifetime = cfg.DBMaxConnLifetime

		pool, err := postgres.NewPool(ctx, poolCfg)
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer pool.Close()
		log.Info("database connection established")

		txm := postgres.NewTxManager(pool)
		txManager = txm
		routerCfg.Pool = pool

		auditService, err := postgres.NewAuditService(txm)
		if err != nil {
			log.Fatalw("failed to initialize audit service", "error", err)
		}
		routerCfg.Audit = auditService

		docRepo = document_repo.NewPricedDocumentRepo(txm)

		routerCfg.AccountService = account.NewService(catalog_repo.NewAccountRepo(txm), txm)
		routerCfg.ContactService = contact.NewService(catalog_repo.NewContactRepo(txm), txm)
		routerCfg.LeadService = lead.NewService(catalog_repo.NewLeadRepo(txm), txm)

		registerCatalogHooks(routerCfg.AccountService.Hooks(), auditService, "account")
		registerCatalogHooks(routerCfg.ContactService.Hooks(), auditService, "contact")
		registerCatalogHooks(routerCfg.LeadService.Hooks(), auditService, "lead")

	case config.StoreMemory:
		// In-memory store covers the document subsystem only; catalog
		// routes stay unregistered.
		txManager = memory.NewTxManager()
		docRepo = memory.NewPricedDocumentRepo()
		log.Warn("running on in-memory store, data will not survive restarts")
	}

	docService := priceddoc.NewService(docRepo, txManager)
	registerDocumentHooks(docService, routerCfg.Audit)
	routerCfg.PricedDocService = docService

	router := v1.NewRouter(routerCfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// catalogEntity is the slice of catalog behavior the audit hooks need.
type catalogEntity interface {
	entity.Validatable
	GetID() id.ID
}

// registerCatalogHooks records change history for catalog lifecycle events.
func registerCatalogHooks[T catalogEntity](hooks *domain.HookRegistry[T], auditService *postgres.AuditService, entityType string) {
	hooks.OnAfterCreate(func(ctx context.Context, e T) error {
		return auditService.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionCreate, nil)
	})
	hooks.OnAfterUpdate(func(ctx context.Context, e T) error {
		return auditService.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionUpdate, nil)
	})
	hooks.OnAfterDelete(func(ctx context.Context, e T) error {
		return auditService.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionDelete, nil)
	})
}

// registerDocumentHooks attaches actor enrichment and change history
// recording to the document lifecycle.
func registerDocumentHooks(svc *priceddoc.Service, auditService *postgres.AuditService) {
	svc.Hooks().OnBeforeCreate(func(ctx context.Context, doc *priceddoc.PricedDocument) error {
		audit.EnrichCreatedByDirect(ctx, &doc.CreatedBy, &doc.UpdatedBy)
		return nil
	})
	svc.Hooks().OnBeforeUpdate(func(ctx context.Context, doc *priceddoc.PricedDocument) error {
		audit.EnrichUpdatedByDirect(ctx, &doc.UpdatedBy)
		return nil
	})

	if auditService == nil {
		return
	}

	svc.Hooks().OnAfterCreate(func(ctx context.Context, doc *priceddoc.PricedDocument) error {
		return auditService.LogChange(ctx, string(doc.Kind), doc.ID, postgres.AuditActionCreate, map[string]any{
			"documentNumber": doc.Number,
			"status":         doc.Status,
			"grandTotal":     doc.GrandTotal,
		})
	})
	svc.Hooks().OnAfterUpdate(func(ctx context.Context, doc *priceddoc.PricedDocument) error {
		return auditService.LogChange(ctx, string(doc.Kind), doc.ID, postgres.AuditActionUpdate, map[string]any{
			"status":     doc.Status,
			"grandTotal": doc.GrandTotal,
			"version":    doc.Version,
		})
	})
	svc.Hooks().OnAfterDelete(func(ctx context.Context, doc *priceddoc.PricedDocument) error {
		return auditService.LogChange(ctx, string(doc.Kind), doc.ID, postgres.AuditActionDelete, map[string]any{
			"documentNumber": doc.Number,
		})
	})
}
