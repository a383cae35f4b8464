// Package enrich joins transactions with product catalog metadata.
package enrich

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/avencourt/salescope/internal/model"
)

// catalogKeyRe extracts the numeric catalog key from a product ID,
// e.g. "P101" -> 101, "p5" -> 5.
var catalogKeyRe = regexp.MustCompile(`(?i)P(\d+)`)

// Merge produces one enriched record per input transaction, in input order.
// A transaction whose product ID resolves to a known catalog entry gets the
// catalog's category, brand, and rating; otherwise the API fields stay nil
// and APIMatch is false. Merge never fails and never mutates its inputs.
func Merge(transactions []model.Transaction, mapping map[int]model.ProductMeta) []model.EnrichedTransaction {
	enriched := make([]model.EnrichedTransaction, 0, len(transactions))

	for _, t := range transactions {
		e := model.EnrichedTransaction{Transaction: t}

		if key, ok := catalogKey(t.ProductID); ok {
			if meta, found := mapping[key]; found {
				category := meta.Category
				brand := meta.Brand
				rating := meta.Rating
				e.APICategory = &category
				e.APIBrand = &brand
				e.APIRating = &rating
				e.APIMatch = true
			}
		}

		enriched = append(enriched, e)
	}

	return enriched
}

// catalogKey parses the numeric catalog key out of a product ID.
func catalogKey(productID string) (int, bool) {
	m := catalogKeyRe.FindStringSubmatch(productID)
	if m == nil {
		return 0, false
	}
	key, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return key, true
}

// Summary describes the outcome of an enrichment run.
type Summary struct {
	Total             int
	Matched           int
	SuccessRate       float64  // percentage, two decimals
	UnmatchedProducts []string // sorted distinct product names that failed to match
}

// Summarize computes match statistics over an enriched set.
func Summarize(enriched []model.EnrichedTransaction) Summary {
	s := Summary{Total: len(enriched)}

	unmatched := make(map[string]bool)
	for _, e := range enriched {
		if e.APIMatch {
			s.Matched++
			continue
		}
		name := e.ProductName
		if name == "" {
			name = "Unknown"
		}
		unmatched[name] = true
	}

	if s.Total > 0 {
		rate := float64(s.Matched) / float64(s.Total) * 100
		s.SuccessRate = math.Round(rate*100) / 100
	}

	s.UnmatchedProducts = make([]string, 0, len(unmatched))
	for name := range unmatched {
		s.UnmatchedProducts = append(s.UnmatchedProducts, name)
	}
	sort.Strings(s.UnmatchedProducts)

	return s
}
