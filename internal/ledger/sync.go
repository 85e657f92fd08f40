package ledger

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jyelen1110/alfies-server/internal/models"
	"github.com/jyelen1110/alfies-server/internal/store"
)

// SyncError is a typed push failure the caller persists as invoice status
type SyncError struct {
	Status models.InvoiceSyncStatus
	Reason string
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Reason)
}

// Service pushes approved invoices to the external accounting system.
// It is invoked by the order-approval flow, never by ingestion directly.
type Service struct {
	client *Client
	orders *store.OrderStore
}

// NewService creates a ledger sync service
func NewService(client *Client, orders *store.OrderStore) *Service {
	return &Service{client: client, orders: orders}
}

// PushInvoice exports one invoice and records the outcome on the invoice
// row. Typed failures (not_connected, missing_fields, validation_error) are
// terminal statuses; transport failures leave the invoice pending so a later
// manual push can retry.
func (s *Service) PushInvoice(ctx context.Context, tenantID, orderID string) {
	invoice, err := s.orders.GetInvoice(ctx, tenantID, orderID)
	if err != nil {
		log.Printf("❌ Ledger: failed to load invoice for order %s: %v", orderID, err)
		return
	}

	ledgerID, err := s.push(invoice)
	if err != nil {
		if syncErr, ok := err.(*SyncError); ok {
			log.Printf("⚠️ Ledger: invoice %s rejected (%s)", invoice.InvoiceNumber, syncErr.Status)
			s.record(ctx, invoice.ID, syncErr.Status, syncErr.Reason, "")
			return
		}
		log.Printf("⚠️ Ledger: push of invoice %s failed, left pending: %v", invoice.InvoiceNumber, err)
		s.record(ctx, invoice.ID, models.InvoiceSyncPending, err.Error(), "")
		return
	}

	log.Printf("✅ Ledger: invoice %s exported as %s", invoice.InvoiceNumber, ledgerID)
	s.record(ctx, invoice.ID, models.InvoiceSyncSynced, "", ledgerID)
}

func (s *Service) record(ctx context.Context, invoiceID string, status models.InvoiceSyncStatus, reason, ledgerID string) {
	if err := s.orders.UpdateInvoiceSync(ctx, invoiceID, status, reason, ledgerID); err != nil {
		log.Printf("❌ Ledger: failed to record sync outcome for invoice %s: %v", invoiceID, err)
	}
}

// push validates and exports one invoice, returning the remote invoice id
func (s *Service) push(invoice *models.Invoice) (string, error) {
	if !s.client.IsConfigured() {
		return "", &SyncError{Status: models.InvoiceSyncNotConnected, Reason: "no accounting connection configured"}
	}

	if missing := missingFields(invoice); len(missing) > 0 {
		return "", &SyncError{
			Status: models.InvoiceSyncMissingFields,
			Reason: "missing ledger fields: " + strings.Join(missing, ", "),
		}
	}

	id, err := s.client.CreateInvoice(buildPayload(invoice))
	if err != nil {
		if isValidationFault(err) {
			return "", &SyncError{Status: models.InvoiceSyncValidationError, Reason: err.Error()}
		}
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

// missingFields lists everything the accounting export requires but the
// invoice does not carry
func missingFields(invoice *models.Invoice) []string {
	var missing []string
	if invoice.Order == nil || len(invoice.Order.Items) == 0 {
		return []string{"order line items"}
	}
	for _, item := range invoice.Order.Items {
		if item.LedgerItemCode == "" {
			missing = append(missing, fmt.Sprintf("%s: ledger item code", item.Name))
		}
		if item.LedgerAccountCode == "" {
			missing = append(missing, fmt.Sprintf("%s: ledger account code", item.Name))
		}
	}
	return missing
}

// buildPayload shapes the invoice for the remote create call
func buildPayload(invoice *models.Invoice) map[string]interface{} {
	lines := make([]interface{}, 0, len(invoice.Order.Items))
	for _, item := range invoice.Order.Items {
		lines = append(lines, []interface{}{0, 0, map[string]interface{}{
			"name":       item.Name,
			"quantity":   item.Quantity,
			"price_unit": item.UnitPrice,
			"ref":        item.LedgerItemCode,
			"account":    item.LedgerAccountCode,
		}})
	}

	customerName := ""
	if invoice.Order.Customer != nil {
		customerName = invoice.Order.Customer.BusinessName
	}

	return map[string]interface{}{
		"move_type":        "out_invoice",
		"ref":              invoice.InvoiceNumber,
		"partner_name":     customerName,
		"invoice_line_ids": lines,
	}
}

// isValidationFault classifies remote faults the accounting system raises
// for well-formed but rejected documents
func isValidationFault(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "validation") || strings.Contains(msg, "invalid")
}
