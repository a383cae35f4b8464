package catalog

import "github.com/avencourt/salescope/internal/model"

// BuildMapping indexes catalog products by their numeric ID for the
// enrichment merge.
func BuildMapping(products []Product) map[int]model.ProductMeta {
	mapping := make(map[int]model.ProductMeta, len(products))
	for _, p := range products {
		mapping[p.ID] = model.ProductMeta{
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		}
	}
	return mapping
}
