package models

import "time"

// Story is a promotional highlight card shown in the home page carousel.
type Story struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title"`
	ImageURL     string    `json:"image_url"`
	LinkURL      string    `json:"link_url"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// SiteSettings is the single-row process-wide site configuration. Views
// receive it as an immutable snapshot; an admin update triggers an explicit
// reload rather than mutating a shared value in place.
type SiteSettings struct {
	ID             int    `json:"-" gorm:"primaryKey"`
	Language       string `json:"language"`
	RunningText    string `json:"running_text"`
	WhatsAppNumber string `json:"whatsapp_number"`
	BrandName      string `json:"brand_name"`
}

// DefaultSiteSettings returns the settings used before an admin has saved any.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID:       1,
		Language: "id",
	}
}
