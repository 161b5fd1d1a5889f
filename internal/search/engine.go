package search

import (
	"strconv"
	"strings"

	"primaland/server/internal/models"
)

// Filter returns the subset of listings satisfying every active constraint
// in filters, preserving the collection's original order. It is a pure
// function of its inputs and is cheap enough to re-run on every filter-state
// change for collections of realistic size.
//
// Query matching is conjunctive: the query is split into whitespace-separated
// terms and a listing matches only if every term appears as a substring of
// its searchable text. The type facet is a case-sensitive exact match and the
// price bounds are inclusive. A price bound that fails to parse as an integer
// means "no constraint".
func Filter(listings []models.Listing, filters models.SearchFilters) []models.Listing {
	terms := tokenize(filters.Query)
	minPrice, hasMin := parsePrice(filters.MinPrice)
	maxPrice, hasMax := parsePrice(filters.MaxPrice)

	result := make([]models.Listing, 0, len(listings))
	for _, listing := range listings {
		if !matchesTerms(&listing, terms) {
			continue
		}
		if filters.Type != "" && listing.Type != filters.Type {
			continue
		}
		if hasMin && listing.Price < minPrice {
			continue
		}
		if hasMax && listing.Price > maxPrice {
			continue
		}
		result = append(result, listing)
	}
	return result
}

// tokenize splits a free-text query into lower-cased terms. An empty or
// whitespace-only query yields no terms.
func tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// matchesTerms reports whether every term occurs in the listing's searchable
// text. Zero terms always match.
func matchesTerms(listing *models.Listing, terms []string) bool {
	if len(terms) == 0 {
		return true
	}

	text := searchableText(listing)
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

// searchableText concatenates the listing's text fields into one lower-cased
// haystack. Missing optional fields contribute an empty string.
func searchableText(listing *models.Listing) string {
	return strings.ToLower(strings.Join([]string{
		listing.Title,
		listing.Location,
		listing.Description,
		listing.Type,
		listing.NearbyAccess,
	}, " "))
}

// parsePrice parses a price bound from its raw query-parameter form. The
// second return value is false when the bound is absent or not a number, in
// which case the bound does not constrain the result.
func parsePrice(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	price, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}
