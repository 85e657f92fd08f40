package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/jyelen1110/alfies-server/internal/matching"
)

func TestMaterializePerLineTax(t *testing.T) {
	orders := &fakeOrders{}
	m := NewMaterializer(orders)

	lines := []matching.MatchedLine{
		{ItemID: "item-1", Name: "Widget", Quantity: 2, UnitPrice: 5.00, TaxRate: 10},
		{ItemID: "item-2", Name: "Gadget", Quantity: 1, UnitPrice: 10.00, TaxRate: 0},
	}

	order, err := m.Materialize(context.Background(), testMessage(), "sup-1", nil, lines, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Tax applies per line at each item's own rate, not blended
	if order.Subtotal != 20.00 {
		t.Errorf("subtotal = %.2f, want 20.00", order.Subtotal)
	}
	if order.Tax != 1.00 {
		t.Errorf("tax = %.2f, want 1.00", order.Tax)
	}
	if order.Total != 21.00 {
		t.Errorf("total = %.2f, want 21.00", order.Total)
	}

	if len(orders.createdItems) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(orders.createdItems))
	}
	if orders.createdItems[0].ItemID != "item-1" || orders.createdItems[0].TaxRate != 10 {
		t.Errorf("line 1 not carried through: %+v", orders.createdItems[0])
	}
}

func TestMaterializeRoundsSums(t *testing.T) {
	orders := &fakeOrders{}
	m := NewMaterializer(orders)

	// 3 x 1.333 = 3.999, must land as 4.00 not 3.999
	lines := []matching.MatchedLine{
		{ItemID: "item-1", Name: "Widget", Quantity: 3, UnitPrice: 1.333, TaxRate: 10},
	}

	order, err := m.Materialize(context.Background(), testMessage(), "sup-1", nil, lines, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Subtotal != 4.00 {
		t.Errorf("subtotal = %v, want 4.00", order.Subtotal)
	}
	if order.Tax != 0.40 {
		t.Errorf("tax = %v, want 0.40", order.Tax)
	}
	if order.Total != 4.40 {
		t.Errorf("total = %v, want 4.40", order.Total)
	}
}

func TestMaterializeRefusesEmptyOrder(t *testing.T) {
	m := NewMaterializer(&fakeOrders{})

	if _, err := m.Materialize(context.Background(), testMessage(), "sup-1", nil, nil, nil); err == nil {
		t.Fatal("expected error for empty line list")
	}
}

func TestMaterializeNotesCarryProvenance(t *testing.T) {
	orders := &fakeOrders{}
	m := NewMaterializer(orders)

	lines := []matching.MatchedLine{
		{ItemID: "item-1", Name: "Widget", Quantity: 1, UnitPrice: 5.00},
	}
	unmatched := []string{"Mystery Item x3 (no code)"}

	order, err := m.Materialize(context.Background(), testMessage(), "sup-1", nil, lines, unmatched)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"orders@cornercafe.example", "Weekly order", "Mystery Item x3 (no code)"} {
		if !strings.Contains(order.Notes, want) {
			t.Errorf("notes missing %q:\n%s", want, order.Notes)
		}
	}
}
