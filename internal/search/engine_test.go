package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"primaland/server/internal/models"
)

func testListings() []models.Listing {
	return []models.Listing{
		{
			ID:       "1",
			Title:    "Rumah Mewah Harapan Indah",
			Location: "Harapan Indah, Bekasi",
			Type:     models.TypeHouse,
			Price:    850_000_000,
		},
		{
			ID:          "2",
			Title:       "Ruko Strategis Summarecon",
			Location:    "Summarecon, Bekasi",
			Type:        models.TypeShophouse,
			Price:       1_200_000_000,
			Description: "Cocok untuk usaha",
		},
		{
			ID:           "3",
			Title:        "Villa Asri Puncak",
			Location:     "Puncak, Bogor",
			Type:         models.TypeVilla,
			Price:        2_500_000_000,
			NearbyAccess: "Gerbang Tol Ciawi: 5km",
		},
		{
			ID:       "4",
			Title:    "Kavling Tanah Harapan Indah",
			Location: "Harapan Indah, Bekasi",
			Type:     models.TypeLand,
			Price:    500_000_000,
		},
	}
}

func TestFilter_EmptyFiltersIsIdentity(t *testing.T) {
	listings := testListings()

	result := Filter(listings, models.SearchFilters{})

	assert.Equal(t, listings, result)
}

func TestFilter_Idempotent(t *testing.T) {
	listings := testListings()
	filters := models.SearchFilters{Query: "harapan", MaxPrice: "900000000"}

	once := Filter(listings, filters)
	twice := Filter(once, filters)

	assert.Equal(t, once, twice)
}

func TestFilter_AndSemantics(t *testing.T) {
	listings := testListings()

	// All three terms must be present; listing 4 has "harapan indah" but is
	// not a rumah, listing 1 has all three.
	result := Filter(listings, models.SearchFilters{Query: "harapan indah rumah"})

	assert.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)
}

func TestFilter_QueryIsCaseInsensitive(t *testing.T) {
	result := Filter(testListings(), models.SearchFilters{Query: "HARAPAN indah"})

	assert.Len(t, result, 2)
	assert.Equal(t, "1", result[0].ID)
	assert.Equal(t, "4", result[1].ID)
}

func TestFilter_QueryMatchesNearbyAccess(t *testing.T) {
	result := Filter(testListings(), models.SearchFilters{Query: "tol ciawi"})

	assert.Len(t, result, 1)
	assert.Equal(t, "3", result[0].ID)
}

func TestFilter_TypeIsExact(t *testing.T) {
	listings := testListings()

	assert.Len(t, Filter(listings, models.SearchFilters{Type: "Villa"}), 1)
	// No case folding and no fuzzy matching on the facet
	assert.Empty(t, Filter(listings, models.SearchFilters{Type: "villa"}))
	assert.Empty(t, Filter(listings, models.SearchFilters{Type: "Vila"}))
}

func TestFilter_MaxPriceBoundaryIsInclusive(t *testing.T) {
	result := Filter(testListings(), models.SearchFilters{MaxPrice: "850000000"})

	assert.Len(t, result, 2)
	assert.Equal(t, "1", result[0].ID)
	assert.Equal(t, "4", result[1].ID)
}

func TestFilter_MinPriceBoundaryIsInclusive(t *testing.T) {
	result := Filter(testListings(), models.SearchFilters{MinPrice: "1200000000"})

	assert.Len(t, result, 2)
	assert.Equal(t, "2", result[0].ID)
	assert.Equal(t, "3", result[1].ID)
}

func TestFilter_NonNumericPriceMeansUnconstrained(t *testing.T) {
	listings := testListings()

	// A parse failure must not exclude everything and must not panic
	assert.Equal(t, listings, Filter(listings, models.SearchFilters{MaxPrice: "cheap"}))
	assert.Equal(t, listings, Filter(listings, models.SearchFilters{MinPrice: "1e9"}))
}

func TestFilter_PreservesOriginalOrder(t *testing.T) {
	result := Filter(testListings(), models.SearchFilters{Query: "bekasi"})

	ids := make([]string, len(result))
	for i, listing := range result {
		ids[i] = listing.ID
	}
	assert.Equal(t, []string{"1", "2", "4"}, ids)
}

func TestFilter_CombinedConstraints(t *testing.T) {
	result := Filter(testListings(), models.SearchFilters{
		Query:    "harapan indah",
		Type:     models.TypeLand,
		MaxPrice: "600000000",
	})

	assert.Len(t, result, 1)
	assert.Equal(t, "4", result[0].ID)
}

func TestFilter_MissingOptionalFields(t *testing.T) {
	listings := []models.Listing{{ID: "bare", Title: "Tanah Kosong", Type: models.TypeLand}}

	assert.NotPanics(t, func() {
		result := Filter(listings, models.SearchFilters{Query: "kosong"})
		assert.Len(t, result, 1)
	})
}
