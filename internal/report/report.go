// Package report renders the fixed-layout sales analytics report.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avencourt/salescope/internal/analytics"
	"github.com/avencourt/salescope/internal/enrich"
	"github.com/avencourt/salescope/internal/model"
)

const (
	dividerWidth = 50

	// Display limits per section.
	maxTrendDays     = 10
	maxLowPerformers = 10
	maxUnmatched     = 20
	productNameWidth = 24
)

// Render composes the eight-section analytics report. It is deterministic
// given identical inputs and the injected generation timestamp.
func Render(transactions []model.Transaction, enriched []model.EnrichedTransaction, generatedAt time.Time) string {
	var lines []string
	divider := strings.Repeat("=", dividerWidth)
	rule := strings.Repeat("-", dividerWidth)

	// 1. Header
	lines = append(lines,
		divider,
		strings.Repeat(" ", 15)+"SALES ANALYTICS REPORT",
		strings.Repeat(" ", 10)+"Generated: "+generatedAt.Format("2006-01-02 15:04:05"),
		strings.Repeat(" ", 10)+fmt.Sprintf("Records Processed: %d", len(transactions)),
		divider,
		"",
	)

	// 2. Overall summary
	totalRevenue := analytics.TotalRevenue(transactions)
	avgOrder := 0.0
	if len(transactions) > 0 {
		avgOrder = totalRevenue / float64(len(transactions))
	}
	minDate, maxDate := dateSpan(transactions)
	lines = append(lines,
		"OVERALL SUMMARY",
		rule,
		"Total Revenue:        "+formatCurrency(totalRevenue),
		fmt.Sprintf("Total Transactions:   %d", len(transactions)),
		"Average Order Value:  "+formatCurrency(avgOrder),
		fmt.Sprintf("Date Range:           %s to %s", minDate, maxDate),
		"",
	)

	// 3. Region-wise performance
	regions := analytics.RegionSales(transactions)
	lines = append(lines,
		"REGION-WISE PERFORMANCE",
		rule,
		fmt.Sprintf("%-12s %-15s %-12s %-12s", "Region", "Sales", "% of Total", "Transactions"),
		rule,
	)
	for _, r := range regions {
		lines = append(lines, fmt.Sprintf("%-12s %-15s %6.2f%%      %-12d",
			r.Region, formatCurrency(r.TotalSales), r.Percentage, r.TransactionCount))
	}
	lines = append(lines, "")

	// 4. Top 5 products
	topProducts := analytics.TopProducts(transactions, analytics.DefaultTopN)
	lines = append(lines,
		"TOP 5 PRODUCTS",
		rule,
		fmt.Sprintf("%-6s %-25s %-15s %-15s", "Rank", "Product Name", "Quantity Sold", "Revenue"),
		rule,
	)
	for i, p := range topProducts {
		lines = append(lines, fmt.Sprintf("%-6d %-25s %-15d %s",
			i+1, truncate(p.Name, productNameWidth), p.TotalQuantity, formatCurrency(p.TotalRevenue)))
	}
	lines = append(lines, "")

	// 5. Top 5 customers
	customers := analytics.CustomerAnalysis(transactions)
	topCustomers := analytics.TopCustomers(customers, analytics.DefaultTopN)
	lines = append(lines,
		"TOP 5 CUSTOMERS",
		rule,
		fmt.Sprintf("%-6s %-15s %-15s %-12s", "Rank", "Customer ID", "Total Spent", "Order Count"),
		rule,
	)
	for i, c := range topCustomers {
		lines = append(lines, fmt.Sprintf("%-6d %-15s %-15s %-12d",
			i+1, c.CustomerID, formatCurrency(c.TotalSpent), c.TransactionCount))
	}
	lines = append(lines, "")

	// 6. Daily sales trend
	trend := analytics.DailyTrend(transactions)
	lines = append(lines,
		"DAILY SALES TREND",
		rule,
		fmt.Sprintf("%-12s %-15s %-12s %-15s", "Date", "Revenue", "Transactions", "Unique Customers"),
		rule,
	)
	shown := trend
	if len(shown) > maxTrendDays {
		shown = shown[:maxTrendDays]
	}
	for _, day := range shown {
		lines = append(lines, fmt.Sprintf("%-12s %-15s %-12d %-15d",
			day.Date, formatCurrency(day.Revenue), day.TransactionCount, day.UniqueCustomers))
	}
	if len(trend) > maxTrendDays {
		lines = append(lines, fmt.Sprintf("... and %d more days", len(trend)-maxTrendDays))
	}
	lines = append(lines, "")

	// 7. Product performance analysis
	lines = append(lines, "PRODUCT PERFORMANCE ANALYSIS", rule)
	if peak, ok := analytics.FindPeakDay(transactions); ok {
		lines = append(lines,
			"Best Selling Day:     "+peak.Date,
			"  Revenue:            "+formatCurrency(peak.Revenue),
			fmt.Sprintf("  Transactions:       %d", peak.TransactionCount),
		)
	} else {
		lines = append(lines, "Best Selling Day:     N/A")
	}
	lines = append(lines, "")

	low := analytics.LowPerformers(transactions, analytics.DefaultLowThreshold)
	if len(low) > 0 {
		lines = append(lines,
			fmt.Sprintf("Low Performing Products (Quantity < %d):", analytics.DefaultLowThreshold),
			fmt.Sprintf("%-25s %-12s %-15s", "Product Name", "Quantity", "Revenue"),
			rule,
		)
		lowShown := low
		if len(lowShown) > maxLowPerformers {
			lowShown = lowShown[:maxLowPerformers]
		}
		for _, p := range lowShown {
			lines = append(lines, fmt.Sprintf("%-25s %-12d %s",
				truncate(p.Name, productNameWidth), p.TotalQuantity, formatCurrency(p.TotalRevenue)))
		}
		if len(low) > maxLowPerformers {
			lines = append(lines, fmt.Sprintf("... and %d more products", len(low)-maxLowPerformers))
		}
	} else {
		lines = append(lines, "Low Performing Products: None")
	}
	lines = append(lines, "")

	lines = append(lines,
		"Average Transaction Value per Region:",
		fmt.Sprintf("%-12s %-20s", "Region", "Avg Transaction Value"),
		rule,
	)
	for _, r := range regionAverages(regions) {
		lines = append(lines, fmt.Sprintf("%-12s %s", r.region, formatCurrency(r.avg)))
	}
	lines = append(lines, "")

	// 8. API enrichment summary
	summary := enrich.Summarize(enriched)
	lines = append(lines,
		"API ENRICHMENT SUMMARY",
		rule,
		fmt.Sprintf("Total Products Processed:  %d", summary.Total),
		fmt.Sprintf("Successfully Enriched:     %d", summary.Matched),
		fmt.Sprintf("Success Rate:              %.2f%%", summary.SuccessRate),
		"",
	)
	if len(summary.UnmatchedProducts) > 0 {
		lines = append(lines, fmt.Sprintf("Products That Couldn't Be Enriched (%d unique):", len(summary.UnmatchedProducts)))
		unmatchedShown := summary.UnmatchedProducts
		if len(unmatchedShown) > maxUnmatched {
			unmatchedShown = unmatchedShown[:maxUnmatched]
		}
		for _, name := range unmatchedShown {
			lines = append(lines, "  - "+name)
		}
		if len(summary.UnmatchedProducts) > maxUnmatched {
			lines = append(lines, fmt.Sprintf("  ... and %d more products", len(summary.UnmatchedProducts)-maxUnmatched))
		}
	} else {
		lines = append(lines, "All products successfully enriched!")
	}
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

// dateSpan returns the lexicographic min and max non-empty dates, or N/A.
func dateSpan(transactions []model.Transaction) (string, string) {
	minDate, maxDate := "", ""
	for _, t := range transactions {
		if t.Date == "" {
			continue
		}
		if minDate == "" || t.Date < minDate {
			minDate = t.Date
		}
		if t.Date > maxDate {
			maxDate = t.Date
		}
	}
	if minDate == "" {
		return "N/A", "N/A"
	}
	return minDate, maxDate
}

type regionAvg struct {
	region string
	avg    float64
}

// regionAverages recomputes average transaction value per region, descending.
func regionAverages(regions []analytics.RegionStat) []regionAvg {
	avgs := make([]regionAvg, 0, len(regions))
	for _, r := range regions {
		avg := 0.0
		if r.TransactionCount > 0 {
			avg = r.TotalSales / float64(r.TransactionCount)
		}
		avgs = append(avgs, regionAvg{region: r.Region, avg: avg})
	}
	sort.SliceStable(avgs, func(i, j int) bool {
		return avgs[i].avg > avgs[j].avg
	})
	return avgs
}

// truncate shortens a name to width characters for fixed-width display.
func truncate(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return s
}
