package feed

import (
	"testing"

	"github.com/avencourt/salescope/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTxn(id, customer, region string, qty int, price float64) model.Transaction {
	return model.Transaction{
		ID:          id,
		Date:        "2024-12-01",
		ProductID:   "P101",
		ProductName: "Laptop",
		Quantity:    qty,
		UnitPrice:   price,
		CustomerID:  customer,
		Region:      region,
	}
}

func TestValidateAndFilter_Validation(t *testing.T) {
	transactions := []model.Transaction{
		validTxn("T001", "C001", "North", 2, 45000),
		validTxn("X002", "C002", "North", 1, 500),  // bad ID prefix
		validTxn("T003", "K003", "North", 1, 500),  // bad customer prefix
		validTxn("T004", "C004", "North", 0, 500),  // non-positive quantity
		validTxn("T005", "C005", "North", 1, -1),   // non-positive price
		{ID: "T006", ProductID: "P1", CustomerID: "C006"}, // missing fields
		validTxn("T007", "C007", "South", 3, 100),
	}

	valid, invalidCount, summary := ValidateAndFilter(transactions, FilterOptions{})

	assert.Len(t, valid, 2)
	assert.Equal(t, 5, invalidCount)
	assert.Equal(t, 7, summary.TotalInput)
	assert.Equal(t, 5, summary.Invalid)
	assert.Equal(t, 2, summary.FinalCount)
}

func TestValidateAndFilter_RegionFilter(t *testing.T) {
	transactions := []model.Transaction{
		validTxn("T001", "C001", "North", 1, 100),
		validTxn("T002", "C002", "South", 1, 100),
		validTxn("T003", "C003", "North", 1, 100),
	}

	valid, _, summary := ValidateAndFilter(transactions, FilterOptions{Region: "North"})

	require.Len(t, valid, 2)
	for _, tx := range valid {
		assert.Equal(t, "North", tx.Region)
	}
	assert.Equal(t, 1, summary.FilteredByRegion)
}

func TestValidateAndFilter_AmountFilter(t *testing.T) {
	transactions := []model.Transaction{
		validTxn("T001", "C001", "North", 1, 100),   // 100
		validTxn("T002", "C002", "North", 2, 300),   // 600
		validTxn("T003", "C003", "North", 1, 10000), // 10000
	}

	minAmount := 200.0
	maxAmount := 5000.0
	valid, _, summary := ValidateAndFilter(transactions, FilterOptions{
		MinAmount: &minAmount,
		MaxAmount: &maxAmount,
	})

	require.Len(t, valid, 1)
	assert.Equal(t, "T002", valid[0].ID)
	assert.Equal(t, 2, summary.FilteredByAmount)
}

func TestValidateAndFilter_Empty(t *testing.T) {
	valid, invalidCount, summary := ValidateAndFilter(nil, FilterOptions{})
	assert.Empty(t, valid)
	assert.Zero(t, invalidCount)
	assert.Zero(t, summary.FinalCount)
}

func TestRegions(t *testing.T) {
	transactions := []model.Transaction{
		validTxn("T001", "C001", "West", 1, 100),
		validTxn("T002", "C002", "East", 1, 100),
		validTxn("T003", "C003", "West", 1, 100),
		validTxn("T004", "C004", "  ", 1, 100),
	}

	assert.Equal(t, []string{"East", "West"}, Regions(transactions))
	assert.Empty(t, Regions(nil))
}

func TestAmountRange(t *testing.T) {
	transactions := []model.Transaction{
		validTxn("T001", "C001", "North", 2, 250), // 500
		validTxn("T002", "C002", "North", 1, 90000),
		validTxn("T003", "C003", "North", 3, 400), // 1200
	}

	minAmount, maxAmount := AmountRange(transactions)
	assert.InDelta(t, 500.0, minAmount, 1e-9)
	assert.InDelta(t, 90000.0, maxAmount, 1e-9)

	minAmount, maxAmount = AmountRange(nil)
	assert.Zero(t, minAmount)
	assert.Zero(t, maxAmount)
}
