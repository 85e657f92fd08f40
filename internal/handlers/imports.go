package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jyelen1110/alfies-server/internal/middleware"
	"gorm.io/gorm"
)

// listImports returns recent import records for review. Failed and partial
// imports are what the owner looks at to correct orders by hand.
func (r *Router) listImports(w http.ResponseWriter, req *http.Request) {
	tenantID := middleware.TenantFromContext(req.Context())
	recs, err := r.imports.ListRecent(req.Context(), tenantID, 50)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch imports")
		return
	}
	respondJSON(w, http.StatusOK, recs)
}

// getImport returns one import record including its raw forensic snapshot
func (r *Router) getImport(w http.ResponseWriter, req *http.Request) {
	tenantID := middleware.TenantFromContext(req.Context())
	id := mux.Vars(req)["id"]

	rec, err := r.imports.Get(req.Context(), tenantID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, "Import record not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch import record")
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
