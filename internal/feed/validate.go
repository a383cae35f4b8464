package feed

import (
	"sort"
	"strings"

	"github.com/avencourt/salescope/internal/model"
)

// FilterOptions narrows the validated set before analysis. Zero values mean
// no filtering on that dimension.
type FilterOptions struct {
	Region    string
	MinAmount *float64
	MaxAmount *float64
}

// FilterSummary records how many transactions each stage removed.
type FilterSummary struct {
	TotalInput       int
	Invalid          int
	FilteredByRegion int
	FilteredByAmount int
	FinalCount       int
}

// ValidateAndFilter applies the validation predicates and optional filters.
// Invalid records are counted, never surfaced as errors.
func ValidateAndFilter(transactions []model.Transaction, opts FilterOptions) ([]model.Transaction, int, FilterSummary) {
	summary := FilterSummary{TotalInput: len(transactions)}

	valid := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if err := t.Validate(); err != nil {
			summary.Invalid++
			continue
		}
		valid = append(valid, t)
	}

	if region := strings.TrimSpace(opts.Region); region != "" {
		before := len(valid)
		kept := valid[:0]
		for _, t := range valid {
			if strings.TrimSpace(t.Region) == region {
				kept = append(kept, t)
			}
		}
		valid = kept
		summary.FilteredByRegion = before - len(valid)
	}

	if opts.MinAmount != nil || opts.MaxAmount != nil {
		before := len(valid)
		kept := valid[:0]
		for _, t := range valid {
			amount := t.Amount()
			if opts.MinAmount != nil && amount < *opts.MinAmount {
				continue
			}
			if opts.MaxAmount != nil && amount > *opts.MaxAmount {
				continue
			}
			kept = append(kept, t)
		}
		valid = kept
		summary.FilteredByAmount = before - len(valid)
	}

	summary.FinalCount = len(valid)
	return valid, summary.Invalid, summary
}

// Regions returns the sorted distinct non-empty regions in the feed.
func Regions(transactions []model.Transaction) []string {
	seen := make(map[string]bool)
	for _, t := range transactions {
		region := strings.TrimSpace(t.Region)
		if region != "" {
			seen[region] = true
		}
	}

	regions := make([]string, 0, len(seen))
	for region := range seen {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// AmountRange returns the smallest and largest transaction amounts.
// Both are zero for an empty feed.
func AmountRange(transactions []model.Transaction) (minAmount, maxAmount float64) {
	for i, t := range transactions {
		amount := t.Amount()
		if i == 0 {
			minAmount, maxAmount = amount, amount
			continue
		}
		if amount < minAmount {
			minAmount = amount
		}
		if amount > maxAmount {
			maxAmount = amount
		}
	}
	return minAmount, maxAmount
}
