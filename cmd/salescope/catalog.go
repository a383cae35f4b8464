package main

import (
	"fmt"
	"strconv"

	"github.com/avencourt/salescope/internal/catalog"
	"github.com/avencourt/salescope/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the product catalog service",
	}

	cmd.PersistentFlags().String("catalog-url", "", "catalog service base URL (default: public endpoint)")
	_ = viper.BindPFlag("catalog.url", cmd.PersistentFlags().Lookup("catalog-url"))

	cmd.AddCommand(catalogFetchCmd())
	cmd.AddCommand(catalogGetCmd())
	cmd.AddCommand(catalogSearchCmd())
	return cmd
}

func catalogFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the full product catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := catalog.NewClient(viper.GetString("catalog.url"))
			products, err := client.FetchAll(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Fetched %d products", len(products))))
			for _, p := range products {
				printProduct(p)
			}
			return nil
		},
	}
}

func catalogGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a single product by catalog ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID %q: %w", args[0], err)
			}

			client := catalog.NewClient(viper.GetString("catalog.url"))
			product, err := client.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}

			printProduct(product)
			return nil
		},
	}
}

func catalogSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog by free-text query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := catalog.NewClient(viper.GetString("catalog.url"))
			products, err := client.SearchProducts(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if len(products) == 0 {
				fmt.Println(cli.FormatWarning("No products matched"))
				return nil
			}
			for _, p := range products {
				printProduct(p)
			}
			return nil
		},
	}
}

func printProduct(p catalog.Product) {
	fmt.Printf("%-6d %-30s %-15s %-15s %.2f\n",
		p.ID, p.Title, p.Category, p.Brand, p.Rating)
}
