package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/avencourt/salescope/internal/enrich"
	"github.com/avencourt/salescope/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2024, 12, 18, 14, 30, 22, 0, time.UTC)

var sectionHeaders = []string{
	"SALES ANALYTICS REPORT",
	"OVERALL SUMMARY",
	"REGION-WISE PERFORMANCE",
	"TOP 5 PRODUCTS",
	"TOP 5 CUSTOMERS",
	"DAILY SALES TREND",
	"PRODUCT PERFORMANCE ANALYSIS",
	"API ENRICHMENT SUMMARY",
}

func txn(id, date, productID, product string, qty int, price float64, customer, region string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Date:        date,
		ProductID:   productID,
		ProductName: product,
		Quantity:    qty,
		UnitPrice:   price,
		CustomerID:  customer,
		Region:      region,
	}
}

func sampleData() ([]model.Transaction, []model.EnrichedTransaction) {
	transactions := []model.Transaction{
		txn("T001", "2024-12-01", "P101", "Laptop", 2, 45000.0, "C001", "North"),
		txn("T002", "2024-12-01", "P999", "Mouse", 1, 500.0, "C002", "North"),
		txn("T003", "2024-12-02", "P102", "Keyboard", 3, 1500.0, "C003", "South"),
	}
	mapping := map[int]model.ProductMeta{
		101: {Title: "Laptop", Category: "laptops", Brand: "Acme", Rating: 4.5},
		102: {Title: "Keyboard", Category: "peripherals", Brand: "Clack", Rating: 4.1},
	}
	return transactions, enrich.Merge(transactions, mapping)
}

func TestRender_SectionOrder(t *testing.T) {
	transactions, enriched := sampleData()
	out := Render(transactions, enriched, generatedAt)

	pos := -1
	for _, header := range sectionHeaders {
		idx := strings.Index(out, header)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", header)
		assert.Greater(t, idx, pos, "section %q out of order", header)
		pos = idx
	}
}

func TestRender_HeaderAndSummary(t *testing.T) {
	transactions, enriched := sampleData()
	out := Render(transactions, enriched, generatedAt)

	assert.Contains(t, out, "Generated: 2024-12-18 14:30:22")
	assert.Contains(t, out, "Records Processed: 3")
	assert.Contains(t, out, "Total Revenue:        ₹95,000.00")
	assert.Contains(t, out, "Total Transactions:   3")
	assert.Contains(t, out, "Average Order Value:  ₹31,666.67")
	assert.Contains(t, out, "Date Range:           2024-12-01 to 2024-12-02")
}

func TestRender_RegionTable(t *testing.T) {
	transactions, enriched := sampleData()
	out := Render(transactions, enriched, generatedAt)

	northIdx := strings.Index(out, "North")
	southIdx := strings.Index(out, "South")
	require.GreaterOrEqual(t, northIdx, 0)
	require.GreaterOrEqual(t, southIdx, 0)
	assert.Less(t, northIdx, southIdx, "regions must be ordered by sales descending")

	assert.Contains(t, out, "₹90,500.00")
	assert.Contains(t, out, "95.26%")
	assert.Contains(t, out, "4.74%")
}

func TestRender_EnrichmentSummary(t *testing.T) {
	transactions, enriched := sampleData()
	out := Render(transactions, enriched, generatedAt)

	assert.Contains(t, out, "Total Products Processed:  3")
	assert.Contains(t, out, "Successfully Enriched:     2")
	assert.Contains(t, out, "Success Rate:              66.67%")
	assert.Contains(t, out, "Products That Couldn't Be Enriched (1 unique):")
	assert.Contains(t, out, "  - Mouse")
}

func TestRender_AllMatched(t *testing.T) {
	transactions := []model.Transaction{
		txn("T001", "2024-12-01", "P101", "Laptop", 2, 45000.0, "C001", "North"),
	}
	mapping := map[int]model.ProductMeta{101: {Category: "laptops", Brand: "Acme", Rating: 4.5}}
	out := Render(transactions, enrich.Merge(transactions, mapping), generatedAt)

	assert.Contains(t, out, "All products successfully enriched!")
	assert.Contains(t, out, "Success Rate:              100.00%")
}

func TestRender_TrendOverflow(t *testing.T) {
	var transactions []model.Transaction
	for day := 1; day <= 14; day++ {
		transactions = append(transactions, txn(
			fmt.Sprintf("T%03d", day),
			fmt.Sprintf("2024-12-%02d", day),
			"P101", "Laptop", 1, 100.0,
			"C001", "North",
		))
	}

	out := Render(transactions, enrich.Merge(transactions, nil), generatedAt)

	assert.Contains(t, out, "... and 4 more days")
	assert.Contains(t, out, "2024-12-10")
	assert.NotContains(t, out, "2024-12-11")
}

func TestRender_ProductNameTruncation(t *testing.T) {
	longName := "Ultra Premium Mechanical Keyboard Deluxe Edition"
	transactions := []model.Transaction{
		txn("T001", "2024-12-01", "P101", longName, 1, 100.0, "C001", "North"),
	}
	mapping := map[int]model.ProductMeta{101: {Category: "peripherals", Brand: "Clack", Rating: 4.1}}

	out := Render(transactions, enrich.Merge(transactions, mapping), generatedAt)

	assert.Contains(t, out, longName[:24])
	assert.NotContains(t, out, longName)
}

func TestRender_PeakDayAndLowPerformers(t *testing.T) {
	transactions, enriched := sampleData()
	out := Render(transactions, enriched, generatedAt)

	assert.Contains(t, out, "Best Selling Day:     2024-12-01")
	assert.Contains(t, out, "Low Performing Products (Quantity < 10):")
	assert.Contains(t, out, "Average Transaction Value per Region:")
}

func TestRender_Empty(t *testing.T) {
	out := Render(nil, nil, generatedAt)

	for _, header := range sectionHeaders {
		assert.Contains(t, out, header)
	}
	assert.Contains(t, out, "Records Processed: 0")
	assert.Contains(t, out, "Total Revenue:        ₹0.00")
	assert.Contains(t, out, "Average Order Value:  ₹0.00")
	assert.Contains(t, out, "Date Range:           N/A to N/A")
	assert.Contains(t, out, "Best Selling Day:     N/A")
	assert.Contains(t, out, "Low Performing Products: None")
	assert.Contains(t, out, "Success Rate:              0.00%")
	assert.True(t, strings.HasSuffix(out, "\n"), "report must end with a trailing blank line")
}

func TestRender_Deterministic(t *testing.T) {
	transactions, enriched := sampleData()

	first := Render(transactions, enriched, generatedAt)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render(transactions, enriched, generatedAt))
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		want   string
		amount float64
	}{
		{want: "₹0.00", amount: 0},
		{want: "₹500.00", amount: 500},
		{want: "₹90,500.00", amount: 90500},
		{want: "₹1,545,000.50", amount: 1545000.5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCurrency(tt.amount))
	}
}
