package matching

import (
	"fmt"
	"strconv"

	"github.com/jyelen1110/alfies-server/internal/models"
)

// ParsedOrderItem is one line item extracted from an order document.
// Name and Quantity are mandatory; everything else is best-effort.
type ParsedOrderItem struct {
	Name      string  `json:"name"`
	Code      string  `json:"code,omitempty"`
	SKU       string  `json:"sku,omitempty"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	UnitPrice float64 `json:"unit_price,omitempty"`
}

// MatchedLine is a parsed item resolved against the catalog, priced and
// carrying the ledger codes the accounting export needs later.
type MatchedLine struct {
	ItemID            string  `json:"item_id"`
	Name              string  `json:"name"`
	Quantity          float64 `json:"quantity"`
	Unit              string  `json:"unit,omitempty"`
	UnitPrice         float64 `json:"unit_price"`
	TaxRate           float64 `json:"tax_rate"`
	LedgerItemCode    string  `json:"ledger_item_code,omitempty"`
	LedgerAccountCode string  `json:"ledger_account_code,omitempty"`
}

// MatchResult holds the outcome of matching one parsed item list.
// Unmatched entries are preformatted for order notes and audit snapshots.
type MatchResult struct {
	Matched   []MatchedLine `json:"matched"`
	Unmatched []string      `json:"unmatched"`
}

// MatchItems resolves parsed items against an inventory snapshot.
// Precedence per item, first hit wins, all comparisons case-insensitive:
//  1. code/sku equals an inventory SKU exactly
//  2. normalized names identical (no substring or fuzzy matching)
//  3. normalized parsed name found in the alias table
//
// This function is pure: it only reads its three inputs.
func MatchItems(parsed []ParsedOrderItem, inventory []models.InventoryItem, aliases []models.ItemAlias) MatchResult {
	bySKU := make(map[string]*models.InventoryItem)
	byName := make(map[string]*models.InventoryItem)
	for i := range inventory {
		item := &inventory[i]
		if sku := normalizeCode(item.SKU); sku != "" {
			if _, exists := bySKU[sku]; !exists {
				bySKU[sku] = item
			}
		}
		if name := Normalize(item.Name); name != "" {
			if _, exists := byName[name]; !exists {
				byName[name] = item
			}
		}
	}

	byID := make(map[string]*models.InventoryItem, len(inventory))
	for i := range inventory {
		byID[inventory[i].ID] = &inventory[i]
	}
	byAlias := make(map[string]*models.InventoryItem)
	for _, alias := range aliases {
		key := Normalize(alias.AliasName)
		if key == "" {
			continue
		}
		if item, ok := byID[alias.ItemID]; ok {
			if _, exists := byAlias[key]; !exists {
				byAlias[key] = item
			}
		}
	}

	var result MatchResult
	for _, p := range parsed {
		item := lookupItem(p, bySKU, byName, byAlias)
		if item == nil {
			result.Unmatched = append(result.Unmatched, FormatUnmatched(p))
			continue
		}

		unitPrice := item.WholesalePrice
		if p.UnitPrice > 0 {
			unitPrice = p.UnitPrice
		}
		unit := p.Unit
		if unit == "" {
			unit = item.Unit
		}

		result.Matched = append(result.Matched, MatchedLine{
			ItemID:            item.ID,
			Name:              item.Name,
			Quantity:          p.Quantity,
			Unit:              unit,
			UnitPrice:         unitPrice,
			TaxRate:           item.TaxRate,
			LedgerItemCode:    item.LedgerItemCode,
			LedgerAccountCode: item.LedgerAccountCode,
		})
	}

	return result
}

func lookupItem(p ParsedOrderItem, bySKU, byName, byAlias map[string]*models.InventoryItem) *models.InventoryItem {
	for _, code := range []string{p.Code, p.SKU} {
		if key := normalizeCode(code); key != "" {
			if item, ok := bySKU[key]; ok {
				return item
			}
		}
	}

	name := Normalize(p.Name)
	if name == "" {
		return nil
	}
	if item, ok := byName[name]; ok {
		return item
	}
	if item, ok := byAlias[name]; ok {
		return item
	}
	return nil
}

// FormatUnmatched renders a parsed item as a human-readable audit string,
// e.g. `Choc Chip Shortbread x12 (SB-175)` or `Mystery Item x3 (no code)`.
func FormatUnmatched(p ParsedOrderItem) string {
	code := p.Code
	if code == "" {
		code = p.SKU
	}
	if code == "" {
		code = "no code"
	}
	qty := strconv.FormatFloat(p.Quantity, 'f', -1, 64)
	return fmt.Sprintf("%s x%s (%s)", p.Name, qty, code)
}
