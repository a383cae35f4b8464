package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/avencourt/salescope/internal/model"
)

// Default parameters used by the report renderer.
const (
	DefaultTopN         = 5
	DefaultLowThreshold = 10
)

// TotalRevenue sums the amount of every transaction. No rounding is applied;
// values stay full-precision until display.
func TotalRevenue(transactions []model.Transaction) float64 {
	var total float64
	for _, t := range transactions {
		total += t.Amount()
	}
	return total
}

// FindPeakDay returns the date with the highest summed revenue. The second
// return value is false when no transaction carries a non-empty date.
// Ties go to the lexicographically smallest date so repeated runs over the
// same feed always agree.
func FindPeakDay(transactions []model.Transaction) (PeakDay, bool) {
	type dayAccum struct {
		revenue float64
		count   int
	}
	days := make(map[string]*dayAccum)

	for _, t := range transactions {
		date := strings.TrimSpace(t.Date)
		if date == "" {
			continue
		}
		acc, ok := days[date]
		if !ok {
			acc = &dayAccum{}
			days[date] = acc
		}
		acc.revenue += t.Amount()
		acc.count++
	}

	if len(days) == 0 {
		return PeakDay{}, false
	}

	var peak PeakDay
	first := true
	for date, acc := range days {
		better := acc.revenue > peak.Revenue ||
			(acc.revenue == peak.Revenue && date < peak.Date)
		if first || better {
			peak = PeakDay{Date: date, Revenue: acc.revenue, TransactionCount: acc.count}
			first = false
		}
	}
	return peak, true
}

// DailyTrend groups transactions by date and reports revenue, transaction
// count, and distinct customers per day, in ascending date order.
func DailyTrend(transactions []model.Transaction) []DayStat {
	type dayAccum struct {
		revenue   float64
		count     int
		customers map[string]bool
	}
	days := make(map[string]*dayAccum)

	for _, t := range transactions {
		date := strings.TrimSpace(t.Date)
		if date == "" {
			continue
		}
		acc, ok := days[date]
		if !ok {
			acc = &dayAccum{customers: make(map[string]bool)}
			days[date] = acc
		}
		acc.revenue += t.Amount()
		acc.count++
		if customer := strings.TrimSpace(t.CustomerID); customer != "" {
			acc.customers[customer] = true
		}
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	trend := make([]DayStat, 0, len(dates))
	for _, date := range dates {
		acc := days[date]
		trend = append(trend, DayStat{
			Date:             date,
			Revenue:          acc.revenue,
			TransactionCount: acc.count,
			UniqueCustomers:  len(acc.customers),
		})
	}
	return trend
}

// RegionSales rolls up sales by region, ordered by total sales descending.
// Ties keep first-seen region order. Percentages are of the grand total
// across all regions and are zero when the grand total is zero.
func RegionSales(transactions []model.Transaction) []RegionStat {
	index := make(map[string]int)
	var stats []RegionStat
	var grandTotal float64

	for _, t := range transactions {
		region := strings.TrimSpace(t.Region)
		if region == "" {
			continue
		}
		i, ok := index[region]
		if !ok {
			i = len(stats)
			index[region] = i
			stats = append(stats, RegionStat{Region: region})
		}
		amount := t.Amount()
		stats[i].TotalSales += amount
		stats[i].TransactionCount++
		grandTotal += amount
	}

	for i := range stats {
		if grandTotal > 0 {
			stats[i].Percentage = round2(stats[i].TotalSales / grandTotal * 100)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})
	return stats
}

// TopProducts returns the n best-selling products by total quantity,
// descending. Ties keep first-seen product order.
func TopProducts(transactions []model.Transaction, n int) []ProductStat {
	if n <= 0 {
		n = DefaultTopN
	}
	stats := productRollup(transactions)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalQuantity > stats[j].TotalQuantity
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowPerformers returns products whose total quantity is strictly below
// threshold, ascending by quantity. Callers truncate for display.
func LowPerformers(transactions []model.Transaction, threshold int) []ProductStat {
	if threshold <= 0 {
		threshold = DefaultLowThreshold
	}
	all := productRollup(transactions)

	low := make([]ProductStat, 0, len(all))
	for _, p := range all {
		if p.TotalQuantity < threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].TotalQuantity < low[j].TotalQuantity
	})
	return low
}

// productRollup aggregates quantity and revenue per product name in
// first-seen order. Empty names are skipped.
func productRollup(transactions []model.Transaction) []ProductStat {
	index := make(map[string]int)
	var stats []ProductStat

	for _, t := range transactions {
		name := strings.TrimSpace(t.ProductName)
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(stats)
			index[name] = i
			stats = append(stats, ProductStat{Name: name})
		}
		stats[i].TotalQuantity += t.Quantity
		stats[i].TotalRevenue += t.Amount()
	}
	return stats
}

// CustomerAnalysis aggregates spend per customer. Average transaction value
// is rounded to two decimals.
func CustomerAnalysis(transactions []model.Transaction) map[string]CustomerStat {
	stats := make(map[string]CustomerStat)

	for _, t := range transactions {
		customer := strings.TrimSpace(t.CustomerID)
		if customer == "" {
			continue
		}
		s := stats[customer]
		s.TotalSpent += t.Amount()
		s.TransactionCount++
		stats[customer] = s
	}

	for customer, s := range stats {
		if s.TransactionCount > 0 {
			s.AvgTransactionValue = round2(s.TotalSpent / float64(s.TransactionCount))
		}
		stats[customer] = s
	}
	return stats
}

// TopCustomers ranks customers by total spent, descending, and returns the
// first n. Customers tied on spend order by ID so output is deterministic.
func TopCustomers(stats map[string]CustomerStat, n int) []CustomerRank {
	ranks := make([]CustomerRank, 0, len(stats))
	for id, s := range stats {
		ranks = append(ranks, CustomerRank{
			CustomerID:       id,
			TotalSpent:       s.TotalSpent,
			TransactionCount: s.TransactionCount,
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].TotalSpent != ranks[j].TotalSpent {
			return ranks[i].TotalSpent > ranks[j].TotalSpent
		}
		return ranks[i].CustomerID < ranks[j].CustomerID
	})

	if n > 0 && len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
