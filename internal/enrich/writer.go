package enrich

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/avencourt/salescope/internal/model"
)

// fileHeader is the column layout of the enriched data file.
const fileHeader = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|API_Category|API_Brand|API_Rating|API_Match"

// WriteFile saves enriched transactions as a pipe-delimited file, one row per
// record in input order. Nil API fields render as empty strings.
func WriteFile(path string, enriched []model.EnrichedTransaction) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create enriched data file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, fileHeader)

	for _, e := range enriched {
		fmt.Fprintf(w, "%s|%s|%s|%s|%d|%s|%s|%s|%s|%s|%s|%t\n",
			e.ID,
			e.Date,
			e.ProductID,
			e.ProductName,
			e.Quantity,
			strconv.FormatFloat(e.UnitPrice, 'f', -1, 64),
			e.CustomerID,
			e.Region,
			stringOrEmpty(e.APICategory),
			stringOrEmpty(e.APIBrand),
			ratingOrEmpty(e.APIRating),
			e.APIMatch,
		)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write enriched data file: %w", err)
	}
	return nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ratingOrEmpty(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}
