package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jyelen1110/alfies-server/internal/middleware"
	"github.com/jyelen1110/alfies-server/internal/models"
)

// listItems returns the tenant's inventory
func (r *Router) listItems(w http.ResponseWriter, req *http.Request) {
	tenantID := middleware.TenantFromContext(req.Context())
	items, err := r.catalog.ListItems(req.Context(), tenantID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// createAlias registers an alternate document name for an inventory item,
// so future imports of documents using that name match without manual fixes
func (r *Router) createAlias(w http.ResponseWriter, req *http.Request) {
	tenantID := middleware.TenantFromContext(req.Context())

	var alias models.ItemAlias
	if err := json.NewDecoder(req.Body).Decode(&alias); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if alias.ItemID == "" || alias.AliasName == "" {
		respondError(w, http.StatusBadRequest, "item_id and alias_name are required")
		return
	}
	alias.TenantID = tenantID

	if err := r.catalog.CreateAlias(req.Context(), &alias); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create alias")
		return
	}
	respondJSON(w, http.StatusCreated, alias)
}

// listCustomers returns the tenant's customer accounts
func (r *Router) listCustomers(w http.ResponseWriter, req *http.Request) {
	tenantID := middleware.TenantFromContext(req.Context())

	var customers []models.Customer
	if err := r.db.WithContext(req.Context()).
		Where("tenant_id = ?", tenantID).
		Order("business_name ASC").
		Find(&customers).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	respondJSON(w, http.StatusOK, customers)
}
