package ingest

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jyelen1110/alfies-server/internal/matching"
	"github.com/jyelen1110/alfies-server/internal/models"
)

// Materializer turns matched lines into a persisted order
type Materializer struct {
	orders OrderStore
}

// NewMaterializer creates a materializer over the given order store
func NewMaterializer(orders OrderStore) *Materializer {
	return &Materializer{orders: orders}
}

// Materialize computes totals and persists the order with one line per
// matched item. Tax is computed per line from each item's own rate, not as
// a blended rate over the subtotal. Any persistence error is returned as-is;
// the coordinator treats it as pipeline failure.
func (m *Materializer) Materialize(
	ctx context.Context,
	msg InboundMessage,
	supplierID string,
	customerID *string,
	lines []matching.MatchedLine,
	unmatched []string,
) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("refusing to create an order with no line items")
	}

	var subtotal, tax float64
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		lineNet := line.Quantity * line.UnitPrice
		subtotal += lineNet
		tax += lineNet * line.TaxRate / 100

		items = append(items, models.OrderItem{
			ItemID:            line.ItemID,
			Name:              line.Name,
			Quantity:          line.Quantity,
			Unit:              line.Unit,
			UnitPrice:         line.UnitPrice,
			TaxRate:           line.TaxRate,
			LedgerItemCode:    line.LedgerItemCode,
			LedgerAccountCode: line.LedgerAccountCode,
		})
	}
	subtotal = round2(subtotal)
	tax = round2(tax)

	order := &models.Order{
		TenantID:   msg.TenantID,
		SupplierID: supplierID,
		CustomerID: customerID,
		Source:     models.OrderSourceEmail,
		Status:     models.OrderStatusPendingApproval,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      round2(subtotal + tax),
		Notes:      buildNotes(msg, unmatched),
	}

	if err := m.orders.CreateWithItems(ctx, order, items); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return order, nil
}

// buildNotes embeds the originating email and any unmatched items so the
// reviewing owner can correct the order by hand
func buildNotes(msg InboundMessage, unmatched []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported from email.\nFrom: %s\nSubject: %s", msg.Sender, msg.Subject)
	if len(unmatched) > 0 {
		b.WriteString("\n\nUnmatched items (not added to order):")
		for _, u := range unmatched {
			b.WriteString("\n- ")
			b.WriteString(u)
		}
	}
	return b.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
