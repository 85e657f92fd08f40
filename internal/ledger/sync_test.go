package ledger

import (
	"errors"
	"testing"

	"github.com/jyelen1110/alfies-server/internal/models"
)

func exportableInvoice() *models.Invoice {
	return &models.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV20260824-AB12",
		Order: &models.Order{
			Customer: &models.Customer{BusinessName: "The Corner Cafe"},
			Items: []models.OrderItem{
				{Name: "Widget", Quantity: 2, UnitPrice: 5.00, LedgerItemCode: "W-01", LedgerAccountCode: "4000"},
			},
		},
	}
}

func TestPushNotConnected(t *testing.T) {
	svc := NewService(NewClient("", "", "", ""), nil)

	_, err := svc.push(exportableInvoice())
	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		t.Fatalf("expected SyncError, got %v", err)
	}
	if syncErr.Status != models.InvoiceSyncNotConnected {
		t.Errorf("status = %s, want not_connected", syncErr.Status)
	}
}

func TestPushMissingFields(t *testing.T) {
	svc := NewService(NewClient("https://ledger.example", "db", "user", "pw"), nil)

	inv := exportableInvoice()
	inv.Order.Items[0].LedgerAccountCode = ""

	_, err := svc.push(inv)
	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		t.Fatalf("expected SyncError, got %v", err)
	}
	if syncErr.Status != models.InvoiceSyncMissingFields {
		t.Errorf("status = %s, want missing_fields", syncErr.Status)
	}
}

func TestMissingFields(t *testing.T) {
	inv := exportableInvoice()
	if got := missingFields(inv); len(got) != 0 {
		t.Errorf("complete invoice should have no missing fields, got %v", got)
	}

	inv.Order.Items[0].LedgerItemCode = ""
	inv.Order.Items[0].LedgerAccountCode = ""
	if got := missingFields(inv); len(got) != 2 {
		t.Errorf("expected 2 missing fields, got %v", got)
	}

	inv.Order.Items = nil
	if got := missingFields(inv); len(got) != 1 || got[0] != "order line items" {
		t.Errorf("empty order should report missing line items, got %v", got)
	}
}

func TestBuildPayload(t *testing.T) {
	payload := buildPayload(exportableInvoice())

	if payload["move_type"] != "out_invoice" {
		t.Errorf("move_type = %v", payload["move_type"])
	}
	if payload["ref"] != "INV20260824-AB12" {
		t.Errorf("ref = %v", payload["ref"])
	}
	if payload["partner_name"] != "The Corner Cafe" {
		t.Errorf("partner_name = %v", payload["partner_name"])
	}
	lines, ok := payload["invoice_line_ids"].([]interface{})
	if !ok || len(lines) != 1 {
		t.Fatalf("invoice_line_ids wrong: %v", payload["invoice_line_ids"])
	}
}

func TestIsValidationFault(t *testing.T) {
	if !isValidationFault(errors.New("ValidationError: tax mismatch")) {
		t.Error("validation faults should classify as such")
	}
	if isValidationFault(errors.New("connection refused")) {
		t.Error("transport errors must not classify as validation faults")
	}
}
