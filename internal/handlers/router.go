package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jyelen1110/alfies-server/internal/buildinfo"
	"github.com/jyelen1110/alfies-server/internal/config"
	"github.com/jyelen1110/alfies-server/internal/database"
	"github.com/jyelen1110/alfies-server/internal/ingest"
	"github.com/jyelen1110/alfies-server/internal/middleware"
	"github.com/jyelen1110/alfies-server/internal/store"
)

// Ingestor runs the email ingestion pipeline for one message
type Ingestor interface {
	Ingest(ctx context.Context, msg ingest.InboundMessage) (*ingest.Result, error)
}

// LedgerPusher exports an approved order's invoice to the accounting system
type LedgerPusher interface {
	PushInvoice(ctx context.Context, tenantID, orderID string)
}

// Router wraps the mux router, database and services
type Router struct {
	*mux.Router
	db       *database.DB
	cfg      *config.Config
	imports  *store.ImportStore
	orders   *store.OrderStore
	catalog  *store.CatalogStore
	ingestor Ingestor
	ledger   LedgerPusher
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, imports *store.ImportStore, orders *store.OrderStore, catalog *store.CatalogStore) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		db:      db,
		cfg:     cfg,
		imports: imports,
		orders:  orders,
		catalog: catalog,
	}

	// Public endpoints
	r.HandleFunc("/health", r.healthCheck).Methods("GET")
	r.HandleFunc("/api/status", r.getStatus).Methods("GET")
	r.HandleFunc("/auth/login", r.login).Methods("POST")

	// Everything under /api (except status) requires a bearer token
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret))

	// Ingestion entrypoint, called by the inbound message source or a
	// manual trigger
	api.HandleFunc("/ingest/email", r.ingestEmail).Methods("POST")

	// Import record review
	api.HandleFunc("/imports", r.listImports).Methods("GET")
	api.HandleFunc("/imports/{id}", r.getImport).Methods("GET")

	// Orders and invoices
	api.HandleFunc("/orders", r.listOrders).Methods("GET")
	api.HandleFunc("/orders/{id}", r.getOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/approve", r.approveOrder).Methods("POST")
	api.HandleFunc("/orders/{id}/invoice.pdf", r.getInvoicePDF).Methods("GET")

	// Catalog reference data
	api.HandleFunc("/items", r.listItems).Methods("GET")
	api.HandleFunc("/aliases", r.createAlias).Methods("POST")
	api.HandleFunc("/customers", r.listCustomers).Methods("GET")

	return r
}

// SetIngestor registers the ingestion coordinator
func (r *Router) SetIngestor(ing Ingestor) {
	r.ingestor = ing
}

// SetLedgerService registers the accounting export service
func (r *Router) SetLedgerService(l LedgerPusher) {
	r.ledger = l
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns build and uptime information
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":      "running",
		"started_at":  buildinfo.StartTime,
		"commit":      buildinfo.CommitHash,
		"built_at":    buildinfo.BuildTime,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
