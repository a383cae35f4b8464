// Package analytics computes aggregate statistics over validated transactions.
//
// Every function here is pure: it takes the full transaction collection,
// produces a fresh value-object bundle, and retains nothing across calls.
// Empty input always yields an empty or zero-valued bundle, never an error.
package analytics

// RegionStat is one region's rollup row. Percentage is the region's share of
// the grand total, rounded to two decimals.
type RegionStat struct {
	Region           string
	TotalSales       float64
	TransactionCount int
	Percentage       float64
}

// ProductStat is one product's rollup row.
type ProductStat struct {
	Name         string
	TotalQuantity int
	TotalRevenue  float64
}

// CustomerStat aggregates one customer's purchase history.
type CustomerStat struct {
	TotalSpent          float64
	TransactionCount    int
	AvgTransactionValue float64
}

// CustomerRank is a customer stat keyed for ranked display.
type CustomerRank struct {
	CustomerID       string
	TotalSpent       float64
	TransactionCount int
}

// DayStat is one date's entry in the chronological trend.
type DayStat struct {
	Date             string
	Revenue          float64
	TransactionCount int
	UniqueCustomers  int
}

// PeakDay identifies the date with the highest summed revenue.
type PeakDay struct {
	Date             string
	Revenue          float64
	TransactionCount int
}
