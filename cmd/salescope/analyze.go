package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avencourt/salescope/internal/analytics"
	"github.com/avencourt/salescope/internal/catalog"
	"github.com/avencourt/salescope/internal/cli"
	"github.com/avencourt/salescope/internal/common"
	"github.com/avencourt/salescope/internal/enrich"
	"github.com/avencourt/salescope/internal/feed"
	"github.com/avencourt/salescope/internal/model"
	"github.com/avencourt/salescope/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const totalSteps = 9

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full sales analytics pipeline",
		Long: `Analyze reads the sales feed, validates and optionally filters it, computes
aggregate analytics, enriches records from the product catalog, and writes
the enriched data file and the formatted text report.

Catalog failures never abort the run: the pipeline falls back to the local
catalog cache, and failing that proceeds without enrichment. Output steps
fail independently; the report is still attempted when the enriched-data
save fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd)
		},
	}

	cmd.Flags().String("input", "data/sales_data.txt", "path to the pipe-delimited sales feed")
	cmd.Flags().String("enriched-out", "data/enriched_sales_data.txt", "path for the enriched data file")
	cmd.Flags().String("report-out", "output/sales_report.txt", "path for the text report")
	cmd.Flags().String("region", "", "only analyze transactions from this region")
	cmd.Flags().Float64("min-amount", 0, "drop transactions below this amount")
	cmd.Flags().Float64("max-amount", 0, "drop transactions above this amount")
	cmd.Flags().String("catalog-url", "", "catalog service base URL (default: public endpoint)")
	cmd.Flags().Bool("no-progress", false, "disable the catalog fetch progress bar")

	_ = viper.BindPFlag("input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("output.enriched", cmd.Flags().Lookup("enriched-out"))
	_ = viper.BindPFlag("output.report", cmd.Flags().Lookup("report-out"))
	_ = viper.BindPFlag("catalog.url", cmd.Flags().Lookup("catalog-url"))

	return cmd
}

func runAnalyze(cmd *cobra.Command) error {
	ctx := cmd.Context()

	fmt.Println(cli.TitleStyle.Render(strings.Repeat("=", 50)))
	fmt.Println(cli.TitleStyle.Render(strings.Repeat(" ", 15) + "SALES ANALYTICS SYSTEM"))
	fmt.Println(cli.TitleStyle.Render(strings.Repeat("=", 50)))
	fmt.Println()

	// Step 1: read the feed. Nothing downstream is possible without it.
	fmt.Println(cli.FormatStep(1, totalSteps, "Reading sales data..."))
	lines, err := feed.ReadLines(viper.GetString("input"))
	if err != nil {
		fmt.Println(cli.FormatError(fmt.Sprintf("Error reading sales data: %v", err)))
		return common.NewUserError("could not read sales feed", err)
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Successfully read %d transactions", len(lines))))
	fmt.Println()

	// Step 2: parse
	fmt.Println(cli.FormatStep(2, totalSteps, "Parsing and cleaning data..."))
	transactions := feed.Parse(lines)
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Parsed %d records", len(transactions))))
	fmt.Println()

	// Step 3: filters
	fmt.Println(cli.FormatStep(3, totalSteps, "Applying filters..."))
	opts := filterOptions(cmd)
	regions := feed.Regions(transactions)
	minAmount, maxAmount := feed.AmountRange(transactions)
	fmt.Println(cli.FormatSubtle(fmt.Sprintf("Regions: %s", strings.Join(regions, ", "))))
	fmt.Println(cli.FormatSubtle(fmt.Sprintf("Amount Range: %.2f - %.2f", minAmount, maxAmount)))
	fmt.Println()

	// Step 4: validate
	fmt.Println(cli.FormatStep(4, totalSteps, "Validating transactions..."))
	valid, invalidCount, summary := feed.ValidateAndFilter(transactions, opts)
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Valid: %d | Invalid: %d", len(valid), invalidCount)))
	if summary.FilteredByRegion > 0 || summary.FilteredByAmount > 0 {
		fmt.Println(cli.FormatSubtle(fmt.Sprintf("Filtered out: %d by region, %d by amount",
			summary.FilteredByRegion, summary.FilteredByAmount)))
	}
	fmt.Println()

	// Step 5: analytics
	fmt.Println(cli.FormatStep(5, totalSteps, "Analyzing sales data..."))
	totalRevenue := analytics.TotalRevenue(valid)
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Analysis complete (total revenue: %.2f)", totalRevenue)))
	fmt.Println()

	// Step 6: catalog fetch, degrading to cache and then to nothing
	fmt.Println(cli.FormatStep(6, totalSteps, "Fetching product data from catalog..."))
	mapping := fetchCatalog(ctx, cmd)
	fmt.Println()

	// Step 7: enrich
	fmt.Println(cli.FormatStep(7, totalSteps, "Enriching sales data..."))
	enriched := enrich.Merge(valid, mapping)
	enrichSummary := enrich.Summarize(enriched)
	if enrichSummary.Total > 0 {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Enriched %d/%d transactions (%.1f%%)",
			enrichSummary.Matched, enrichSummary.Total, enrichSummary.SuccessRate)))
	} else {
		fmt.Println(cli.FormatWarning("Nothing to enrich"))
	}
	fmt.Println()

	// Steps 8-9: outputs fail independently
	savedEnriched := saveEnriched(enriched)
	savedReport := saveReport(valid, enriched)

	fmt.Println(cli.TitleStyle.Render("Process Complete!"))
	if savedEnriched {
		fmt.Println(cli.FormatSubtle("  - " + viper.GetString("output.enriched")))
	}
	if savedReport {
		fmt.Println(cli.FormatSubtle("  - " + viper.GetString("output.report")))
	}

	if !savedEnriched && !savedReport {
		return common.NewUserError("no output artifacts could be written", nil)
	}

	common.LogInfo("pipeline complete", common.Fields{
		"transactions": len(valid),
		"enriched":     enrichSummary.Matched,
		"revenue":      totalRevenue,
	})
	return nil
}

// filterOptions builds filter settings from flags; unset amount flags mean
// no bound on that side.
func filterOptions(cmd *cobra.Command) feed.FilterOptions {
	opts := feed.FilterOptions{}
	opts.Region, _ = cmd.Flags().GetString("region")

	if cmd.Flags().Changed("min-amount") {
		v, _ := cmd.Flags().GetFloat64("min-amount")
		opts.MinAmount = &v
	}
	if cmd.Flags().Changed("max-amount") {
		v, _ := cmd.Flags().GetFloat64("max-amount")
		opts.MaxAmount = &v
	}
	return opts
}

// fetchCatalog returns the best product mapping available: live fetch first,
// then the local cache, then empty. A failed fetch is reported, not fatal.
func fetchCatalog(ctx context.Context, cmd *cobra.Command) map[int]model.ProductMeta {
	client := catalog.NewClient(viper.GetString("catalog.url"))
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); noProgress {
		client.SetProgress(false)
	}

	cachePath := viper.GetString("catalog.cache")
	if cachePath == "" {
		cachePath = "data/catalog_cache.db"
	}

	products, err := client.FetchAll(ctx)
	if err == nil {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Fetched %d products", len(products))))
		if cache, cacheErr := catalog.NewCache(cachePath); cacheErr == nil {
			if saveErr := cache.Save(ctx, products); saveErr != nil {
				common.LogError(saveErr, "failed to update catalog cache", nil)
			}
			_ = cache.Close()
		}
		return catalog.BuildMapping(products)
	}

	fmt.Println(cli.FormatWarning(fmt.Sprintf("Catalog fetch failed: %v", err)))

	cache, cacheErr := catalog.NewCache(cachePath)
	if cacheErr == nil {
		defer func() { _ = cache.Close() }()
		if cached, loadErr := cache.Load(ctx); loadErr == nil && len(cached) > 0 {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("Using %d cached products from %s", len(cached), cachePath)))
			return catalog.BuildMapping(cached)
		}
	}

	fmt.Println(cli.FormatWarning("Continuing without catalog enrichment..."))
	return map[int]model.ProductMeta{}
}

func saveEnriched(enriched []model.EnrichedTransaction) bool {
	fmt.Println(cli.FormatStep(8, totalSteps, "Saving enriched data..."))
	path := viper.GetString("output.enriched")
	if err := enrich.WriteFile(path, enriched); err != nil {
		fmt.Println(cli.FormatError(fmt.Sprintf("Error saving enriched data: %v", err)))
		fmt.Println()
		return false
	}
	fmt.Println(cli.FormatSuccess("Saved to: " + path))
	fmt.Println()
	return true
}

func saveReport(valid []model.Transaction, enriched []model.EnrichedTransaction) bool {
	fmt.Println(cli.FormatStep(9, totalSteps, "Generating report..."))
	path := viper.GetString("output.report")
	content := report.Render(valid, enriched, time.Now())
	if err := report.WriteFile(path, content); err != nil {
		fmt.Println(cli.FormatError(fmt.Sprintf("Error generating report: %v", err)))
		fmt.Println()
		return false
	}
	fmt.Println(cli.FormatSuccess("Report saved to: " + path))
	fmt.Println()
	return true
}
