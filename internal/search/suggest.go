package search

import (
	"strings"

	"primaland/server/internal/models"
)

const (
	// maxCandidates caps how many listings feed the suggestion groups
	maxCandidates = 10
	// maxLocationSuggestions caps the distinct-location group
	maxLocationSuggestions = 3
	// maxListingSuggestions caps the listing-summary group
	maxListingSuggestions = 5
)

// Suggestions holds the two groups shown in the search-as-you-type dropdown.
type Suggestions struct {
	Locations []string                `json:"locations"`
	Listings  []models.ListingSummary `json:"listings"`
}

// Suggest derives autocomplete suggestions from the listing collection.
//
// Unlike Filter, matching here is deliberately disjunctive: a listing is a
// candidate when its title OR its location contains the query as a
// case-insensitive substring, so the dropdown stays helpful while the user
// is mid-word. An empty query suggests the newest listings instead. The
// collection is expected in newest-first order; candidates keep that order.
func Suggest(listings []models.Listing, query string) Suggestions {
	query = strings.ToLower(strings.TrimSpace(query))

	var candidates []models.Listing
	for _, listing := range listings {
		if len(candidates) == maxCandidates {
			break
		}
		if query == "" ||
			strings.Contains(strings.ToLower(listing.Title), query) ||
			strings.Contains(strings.ToLower(listing.Location), query) {
			candidates = append(candidates, listing)
		}
	}

	suggestions := Suggestions{
		Locations: make([]string, 0, maxLocationSuggestions),
		Listings:  make([]models.ListingSummary, 0, maxListingSuggestions),
	}

	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		if len(suggestions.Locations) == maxLocationSuggestions {
			break
		}
		location := candidate.Location
		if location == "" {
			continue
		}
		if _, ok := seen[location]; ok {
			continue
		}
		seen[location] = struct{}{}
		suggestions.Locations = append(suggestions.Locations, location)
	}

	for _, candidate := range candidates {
		if len(suggestions.Listings) == maxListingSuggestions {
			break
		}
		suggestions.Listings = append(suggestions.Listings, candidate.Summary())
	}

	return suggestions
}
