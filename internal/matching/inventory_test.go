package matching

import (
	"testing"

	"github.com/jyelen1110/alfies-server/internal/models"
)

func testInventory() []models.InventoryItem {
	return []models.InventoryItem{
		{ID: "item-1", SKU: "ABC123", Name: "Widget", Unit: "each", WholesalePrice: 2.50, TaxRate: 10, LedgerItemCode: "W-01", LedgerAccountCode: "4000"},
		{ID: "item-2", SKU: "SB-175", Name: "Choc Chip Shortbread 175g", Unit: "pack", WholesalePrice: 4.20, TaxRate: 0},
		{ID: "item-3", SKU: "", Name: "Thingamajig", Unit: "box", WholesalePrice: 9.99, TaxRate: 10},
	}
}

func TestMatchItemsCodeBeatsName(t *testing.T) {
	// Code points at the Widget even though the name says Thingamajig
	parsed := []ParsedOrderItem{
		{Name: "Thingamajig", Code: "ABC123", Quantity: 5},
	}

	result := MatchItems(parsed, testInventory(), nil)
	if len(result.Matched) != 1 {
		t.Fatalf("expected 1 matched line, got %d (unmatched: %v)", len(result.Matched), result.Unmatched)
	}
	if result.Matched[0].ItemID != "item-1" {
		t.Errorf("code match lost to name match: got item %s, want item-1", result.Matched[0].ItemID)
	}
	if result.Matched[0].Name != "Widget" {
		t.Errorf("matched line should carry the catalog name, got %q", result.Matched[0].Name)
	}
}

func TestMatchItemsExactNameOnly(t *testing.T) {
	// Name matching is exact after normalization: a prefix of a catalog
	// name must NOT match
	parsed := []ParsedOrderItem{
		{Name: "Choc Chip Shortbread", Quantity: 12},          // prefix, no match
		{Name: "choc chip  SHORTBREAD 175g", Quantity: 3},     // same after normalization
	}

	result := MatchItems(parsed, testInventory(), nil)
	if len(result.Matched) != 1 {
		t.Fatalf("expected exactly 1 matched line, got %d", len(result.Matched))
	}
	if result.Matched[0].ItemID != "item-2" {
		t.Errorf("got item %s, want item-2", result.Matched[0].ItemID)
	}
	if len(result.Unmatched) != 1 {
		t.Fatalf("expected 1 unmatched entry, got %v", result.Unmatched)
	}
	if result.Unmatched[0] != "Choc Chip Shortbread x12 (no code)" {
		t.Errorf("unexpected unmatched format: %q", result.Unmatched[0])
	}
}

func TestMatchItemsAliasFallback(t *testing.T) {
	aliases := []models.ItemAlias{
		{ItemID: "item-3", AliasName: "The Doohickey"},
	}
	parsed := []ParsedOrderItem{
		{Name: "the doohickey", Quantity: 2},
	}

	result := MatchItems(parsed, testInventory(), aliases)
	if len(result.Matched) != 1 {
		t.Fatalf("alias did not match: %v", result.Unmatched)
	}
	if result.Matched[0].ItemID != "item-3" {
		t.Errorf("got item %s, want item-3", result.Matched[0].ItemID)
	}
}

func TestMatchItemsPriceAndUnitFallback(t *testing.T) {
	parsed := []ParsedOrderItem{
		{Name: "Widget", Quantity: 4, UnitPrice: 3.00, Unit: "carton"}, // document price wins
		{Name: "Widget", Quantity: 1},                                  // catalog price and unit
	}

	result := MatchItems(parsed, testInventory(), nil)
	if len(result.Matched) != 2 {
		t.Fatalf("expected 2 matched lines, got %d", len(result.Matched))
	}
	if result.Matched[0].UnitPrice != 3.00 || result.Matched[0].Unit != "carton" {
		t.Errorf("document price/unit should win: got %.2f %s", result.Matched[0].UnitPrice, result.Matched[0].Unit)
	}
	if result.Matched[1].UnitPrice != 2.50 || result.Matched[1].Unit != "each" {
		t.Errorf("catalog fallback wrong: got %.2f %s", result.Matched[1].UnitPrice, result.Matched[1].Unit)
	}
	if result.Matched[0].TaxRate != 10 {
		t.Errorf("tax rate should come from the catalog, got %.1f", result.Matched[0].TaxRate)
	}
}

func TestMatchItemsCaseInsensitiveSKU(t *testing.T) {
	parsed := []ParsedOrderItem{
		{Name: "whatever", SKU: "abc123", Quantity: 1},
	}

	result := MatchItems(parsed, testInventory(), nil)
	if len(result.Matched) != 1 || result.Matched[0].ItemID != "item-1" {
		t.Fatalf("lowercase sku should match ABC123: %+v", result)
	}
}

func TestFormatUnmatched(t *testing.T) {
	cases := []struct {
		item ParsedOrderItem
		want string
	}{
		{ParsedOrderItem{Name: "Mystery Item", Quantity: 3}, "Mystery Item x3 (no code)"},
		{ParsedOrderItem{Name: "Shortbread", Quantity: 2.5, Code: "SB-1"}, "Shortbread x2.5 (SB-1)"},
		{ParsedOrderItem{Name: "Thing", Quantity: 1, SKU: "T-9"}, "Thing x1 (T-9)"},
	}

	for _, c := range cases {
		if got := FormatUnmatched(c.item); got != c.want {
			t.Errorf("FormatUnmatched(%+v) = %q, want %q", c.item, got, c.want)
		}
	}
}
