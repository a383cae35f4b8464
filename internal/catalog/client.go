// Package catalog retrieves product metadata from the remote catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/avencourt/salescope/internal/common"
	"github.com/schollz/progressbar/v3"
)

// DefaultBaseURL is the public catalog endpoint.
const DefaultBaseURL = "https://dummyjson.com"

// pageSize is the number of products requested per page.
const pageSize = 30

// Product is one catalog entry as returned by the API.
type Product struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	ID       int     `json:"id"`
	Rating   float64 `json:"rating"`
}

// productPage is one page of the paginated products listing.
type productPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// Client fetches products from a DummyJSON-style catalog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	progress   bool
}

// NewClient creates a catalog client. An empty baseURL selects the default
// public endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		progress: true,
	}
}

// SetProgress toggles the terminal progress bar shown during paginated
// fetches. Tests and non-interactive callers turn it off.
func (c *Client) SetProgress(enabled bool) {
	c.progress = enabled
}

// FetchAll retrieves every product in the catalog, walking the paginated
// listing until the reported total is reached.
func (c *Client) FetchAll(ctx context.Context) ([]Product, error) {
	var products []Product
	var bar *progressbar.ProgressBar
	skip := 0

	for {
		var page productPage
		err := common.WithRetry(ctx, func() error {
			p, err := c.fetchPage(ctx, skip)
			if err != nil {
				return err
			}
			page = p
			return nil
		}, common.RetryOptions{MaxAttempts: 3})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrCatalogUnavailable, err)
		}

		if bar == nil && c.progress && page.Total > 0 {
			bar = progressbar.NewOptions(page.Total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Fetching catalog..."),
			)
		}

		products = append(products, page.Products...)
		if bar != nil {
			_ = bar.Add(len(page.Products))
		}

		skip += len(page.Products)
		if skip >= page.Total || len(page.Products) == 0 {
			break
		}
	}

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	slog.Debug("Fetched product catalog", "products", len(products))
	return products, nil
}

// GetProduct fetches a single product by its catalog ID.
func (c *Client) GetProduct(ctx context.Context, id int) (Product, error) {
	var product Product
	endpoint := fmt.Sprintf("%s/products/%d", c.baseURL, id)

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return product, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return product, fmt.Errorf("%w: id %d", common.ErrProductNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return product, fmt.Errorf("catalog API error: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return product, fmt.Errorf("failed to decode product: %w", err)
	}
	return product, nil
}

// SearchProducts searches the catalog by free-text query.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	endpoint := fmt.Sprintf("%s/products/search?q=%s", c.baseURL, url.QueryEscape(query))

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog API error: %d - %s", resp.StatusCode, string(body))
	}

	var page productPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return page.Products, nil
}

// fetchPage requests one page of the products listing.
func (c *Client) fetchPage(ctx context.Context, skip int) (productPage, error) {
	var page productPage
	endpoint := fmt.Sprintf("%s/products?limit=%d&skip=%d", c.baseURL, pageSize, skip)

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return page, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return page, common.ErrRateLimit
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return page, fmt.Errorf("catalog API error: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return page, fmt.Errorf("failed to decode product page: %w", err)
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog data: %w", err)
	}
	return resp, nil
}
