package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jyelen1110/alfies-server/internal/invoice"
	"github.com/jyelen1110/alfies-server/internal/middleware"
	"gorm.io/gorm"
)

// listOrders returns the tenant's recent orders
func (r *Router) listOrders(w http.ResponseWriter, req *http.Request) {
	tenantID := middleware.TenantFromContext(req.Context())
	orders, err := r.orders.List(req.Context(), tenantID, 50)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// getOrder returns one order with its items and customer
func (r *Router) getOrder(w http.ResponseWriter, req *http.Request) {
	tenantID := middleware.TenantFromContext(req.Context())
	id := mux.Vars(req)["id"]

	order, err := r.orders.Get(req.Context(), tenantID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// approveOrder moves a pending order to approved, raises its invoice and
// kicks off the accounting export in the background. The export result is
// recorded on the invoice, never blocking the approval response.
func (r *Router) approveOrder(w http.ResponseWriter, req *http.Request) {
	tenantID := middleware.TenantFromContext(req.Context())
	id := mux.Vars(req)["id"]

	order, err := r.orders.Get(req.Context(), tenantID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	inv, err := r.orders.Approve(req.Context(), order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusConflict, "Order is not pending approval")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to approve order")
		return
	}

	log.Printf("📋 Order %s approved, invoice %s raised", order.OrderNumber, inv.InvoiceNumber)

	if r.ledger != nil {
		go r.ledger.PushInvoice(context.Background(), tenantID, order.ID)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"order":     order,
		"invoiceId": inv.ID,
	})
}

// getInvoicePDF renders the order's invoice as a PDF download
func (r *Router) getInvoicePDF(w http.ResponseWriter, req *http.Request) {
	tenantID := middleware.TenantFromContext(req.Context())
	id := mux.Vars(req)["id"]

	inv, err := r.orders.GetInvoice(req.Context(), tenantID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch invoice")
		return
	}

	pdf, err := invoice.RenderPDF(inv)
	if err != nil {
		log.Printf("❌ Invoice PDF generation failed for %s: %v", inv.InvoiceNumber, err)
		respondError(w, http.StatusInternalServerError, "Failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", inv.InvoiceNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
