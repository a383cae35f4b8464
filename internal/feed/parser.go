package feed

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/avencourt/salescope/internal/model"
)

// fieldCount is the exact number of pipe-delimited fields per data line:
// TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region.
const fieldCount = 8

// Parse converts raw feed lines into transactions. Lines with the wrong
// field count or non-numeric quantity/price are dropped silently; the feed
// is known to contain the occasional mangled export row.
func Parse(lines []string) []model.Transaction {
	transactions := make([]model.Transaction, 0, len(lines))
	dropped := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != fieldCount {
			dropped++
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		quantity, err := strconv.Atoi(stripCommas(fields[4]))
		if err != nil {
			dropped++
			continue
		}
		unitPrice, err := strconv.ParseFloat(stripCommas(fields[5]), 64)
		if err != nil {
			dropped++
			continue
		}

		transactions = append(transactions, model.Transaction{
			ID:          fields[0],
			Date:        fields[1],
			ProductID:   fields[2],
			ProductName: stripCommas(fields[3]),
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			CustomerID:  fields[6],
			Region:      fields[7],
		})
	}

	if dropped > 0 {
		slog.Debug("Dropped malformed feed lines", "dropped", dropped)
	}

	return transactions
}

// stripCommas removes thousands separators (and stray commas in names).
func stripCommas(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}
