// Package terms holds the fixed synonym dictionaries that map the many
// label variants found in financial statement rows onto the three canonical
// line items. The dictionaries are process-wide constants and are never
// mutated after init.
package terms

import (
	"sort"
	"strings"

	"wealthscribe/pkg/models"
)

// Synonym is one ranked label phrase. A lower Priority number means higher
// precedence when several phrases match the same row text.
type Synonym struct {
	Phrase   string
	Priority int
}

// Dictionary is an ordered synonym list for one canonical line item.
type Dictionary struct {
	Item     models.LineItem
	Synonyms []Synonym // sorted by Priority ascending
}

// =============================================================================
// DICTIONARY DEFINITIONS
// =============================================================================

var revenueTerms = Dictionary{
	Item: models.LineItemRevenue,
	Synonyms: []Synonym{
		{"revenue from operations", 1},
		{"Total Revenue", 2},
		{"Turnover", 3},
		{"Net Sales", 4},
		{"Gross Revenue", 5},
		{"Operating Revenue", 6},
		{"Revenues", 7},
		{"Receipts", 8},
		{"Income from Operations", 9},
		{"Business Income", 10},
		{"Gross Sales", 11},
	},
}

var operatingProfitTerms = Dictionary{
	Item: models.LineItemOperatingProfit,
	Synonyms: []Synonym{
		{"Operating Profit", 1},
		{"EBIT", 2},
		{"Earnings Before Interest and Tax", 3},
		{"Profit Before Tax", 4},
		{"PBIT", 5},
		{"Operating Income", 6},
		{"Operating Earnings", 7},
		{"Core Earnings", 8},
		{"NOP", 9},
		{"NOPAT", 10},
		{"Operating Margin", 11},
		{"Pre-Tax Operating Profit", 12},
	},
}

var netProfitTerms = Dictionary{
	Item: models.LineItemNetProfit,
	Synonyms: []Synonym{
		{"Net Profit", 1},
		{"Net Income", 2},
		{"Profit After Tax", 3},
		{"PAT", 4},
		{"Earnings After Tax", 5},
		{"Final Profit", 6},
		{"Net Earnings", 7},
		{"Total Comprehensive Income", 8},
		{"Post-Tax Profit", 9},
	},
}

func init() {
	// Definition order already follows priority, but the match reduction
	// relies on it, so enforce rather than assume.
	for _, d := range []*Dictionary{&revenueTerms, &operatingProfitTerms, &netProfitTerms} {
		sort.SliceStable(d.Synonyms, func(i, j int) bool {
			return d.Synonyms[i].Priority < d.Synonyms[j].Priority
		})
	}
}

// All returns the three dictionaries in canonical order.
func All() []Dictionary {
	return []Dictionary{revenueTerms, operatingProfitTerms, netProfitTerms}
}

// ForItem returns the dictionary for one canonical line item.
func ForItem(item models.LineItem) Dictionary {
	switch item {
	case models.LineItemOperatingProfit:
		return operatingProfitTerms
	case models.LineItemNetProfit:
		return netProfitTerms
	default:
		return revenueTerms
	}
}

// =============================================================================
// MATCHING
// =============================================================================

// Match tests rowText against the dictionary and returns the winning
// synonym. Matching is case-insensitive substring containment; among all
// contained phrases the lowest priority number wins. Ties cannot occur
// with distinct priorities, and the ascending scan keeps the selection
// deterministic regardless.
func (d Dictionary) Match(rowText string) (Synonym, bool) {
	if strings.TrimSpace(rowText) == "" {
		return Synonym{}, false
	}
	lower := strings.ToLower(rowText)
	for _, syn := range d.Synonyms {
		if strings.Contains(lower, strings.ToLower(syn.Phrase)) {
			return syn, true
		}
	}
	return Synonym{}, false
}
