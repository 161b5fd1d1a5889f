package models

import (
	"strings"
	"time"
)

// Listing types as they appear in the public site's facet filter. The type
// filter matches these labels exactly, so they are the single source of truth.
const (
	TypeHouse     = "House"
	TypeShophouse = "Shophouse"
	TypeLand      = "Land"
	TypeVilla     = "Villa"
	TypeWarehouse = "Warehouse"
)

// ListingTypes returns the supported property type labels in display order.
func ListingTypes() []string {
	return []string{TypeHouse, TypeShophouse, TypeLand, TypeVilla, TypeWarehouse}
}

// Listing represents one property for sale or rent.
type Listing struct {
	ID           string      `json:"id" gorm:"primaryKey"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Location     string      `json:"location"`
	Type         string      `json:"type"`
	Price        int64       `json:"price"`
	LandArea     float64     `json:"land_area"`
	BuildingArea float64     `json:"building_area"`
	Bedrooms     int         `json:"bedrooms"`
	Bathrooms    int         `json:"bathrooms"`
	Floors       int         `json:"floors"`
	Carport      int         `json:"carport"`
	Electricity  int         `json:"electricity"`
	Water        string      `json:"water"`
	Orientation  string      `json:"orientation"`
	Certificate  string      `json:"certificate"`
	Furniture    string      `json:"furniture"`
	YearBuilt    int         `json:"year_built"`
	Images       StringSlice `json:"images" gorm:"type:text"`
	IsFeatured   bool        `json:"is_featured"`
	IsPromo      bool        `json:"is_promo"`
	MapURL       string      `json:"map_url"`
	NearbyAccess string      `json:"nearby_access"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ListingSummary is the id/title pair shown in the suggestion dropdown.
type ListingSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Summary returns the suggestion-dropdown view of the listing.
func (l *Listing) Summary() ListingSummary {
	return ListingSummary{ID: l.ID, Title: l.Title}
}

// CoverImage returns the first image URL, or an empty string for listings
// with no images (malformed data, tolerated).
func (l *Listing) CoverImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// Normalize fills optional fields with safe defaults and clamps invalid
// numeric facts so downstream code can assume a fully-populated record.
// It reports whether anything had to be repaired.
func (l *Listing) Normalize() bool {
	repaired := false

	if l.Price < 0 {
		l.Price = 0
		repaired = true
	}
	if l.LandArea < 0 {
		l.LandArea = 0
		repaired = true
	}
	if l.BuildingArea < 0 {
		l.BuildingArea = 0
		repaired = true
	}
	if l.Images == nil {
		l.Images = StringSlice{}
		repaired = true
	}

	for _, s := range []*string{
		&l.Title, &l.Description, &l.Location, &l.Type,
		&l.Water, &l.Orientation, &l.Certificate, &l.Furniture,
		&l.MapURL, &l.NearbyAccess,
	} {
		trimmed := strings.TrimSpace(*s)
		if trimmed != *s {
			*s = trimmed
			repaired = true
		}
	}

	return repaired
}

// SearchFilters is the transient filter state of the public search bar.
// Price bounds are kept as strings on purpose: they arrive as raw query
// parameters and a non-numeric value means "no constraint", never an error.
type SearchFilters struct {
	Query    string `form:"q"`
	Type     string `form:"type"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
}
