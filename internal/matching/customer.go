package matching

import (
	"strings"

	"github.com/jyelen1110/alfies-server/internal/models"
)

// ResolveCustomer finds the account a document's customer name refers to.
// Three tiers, first hit wins:
//  1. exact match on normalized business name
//  2. bidirectional substring containment
//  3. word overlap, considering only words longer than 3 characters
//
// Returns nil when no tier matches. The caller treats a miss as non-fatal:
// an order without a linked customer beats a wrong guess.
func ResolveCustomer(customerName string, candidates []models.Customer) *models.Customer {
	search := Normalize(customerName)
	if search == "" {
		return nil
	}

	// Tier 1: exact
	for i := range candidates {
		if Normalize(candidates[i].BusinessName) == search {
			return &candidates[i]
		}
	}

	// Tier 2: containment either way
	for i := range candidates {
		name := Normalize(candidates[i].BusinessName)
		if name == "" {
			continue
		}
		if strings.Contains(name, search) || strings.Contains(search, name) {
			return &candidates[i]
		}
	}

	// Tier 3: any significant word of the search appears in a candidate
	var words []string
	for _, w := range strings.Fields(search) {
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}
	for i := range candidates {
		name := Normalize(candidates[i].BusinessName)
		for _, w := range words {
			if strings.Contains(name, w) {
				return &candidates[i]
			}
		}
	}

	return nil
}
