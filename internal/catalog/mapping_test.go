package catalog

import (
	"testing"

	"github.com/avencourt/salescope/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMapping(t *testing.T) {
	products := []Product{
		{ID: 1, Title: "Laptop", Category: "laptops", Brand: "Acme", Rating: 4.5},
		{ID: 2, Title: "Mouse", Category: "peripherals", Brand: "Clack", Rating: 3.9},
	}

	mapping := BuildMapping(products)
	require.Len(t, mapping, 2)
	assert.Equal(t, model.ProductMeta{Title: "Laptop", Category: "laptops", Brand: "Acme", Rating: 4.5}, mapping[1])
	assert.Equal(t, "peripherals", mapping[2].Category)
}

func TestBuildMapping_DuplicateIDsLastWins(t *testing.T) {
	products := []Product{
		{ID: 1, Title: "Old"},
		{ID: 1, Title: "New"},
	}

	mapping := BuildMapping(products)
	require.Len(t, mapping, 1)
	assert.Equal(t, "New", mapping[1].Title)
}

func TestBuildMapping_Empty(t *testing.T) {
	assert.Empty(t, BuildMapping(nil))
}
