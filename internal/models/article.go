package models

import "time"

// Article is an editorial post shown in the insights section of the public
// site: market insights, buying guides, legal explainers. Content is stored
// as HTML produced by the back-office editor.
type Article struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	ImageURL  string    `json:"image_url"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Defaults filled in when the back office saves an article without them.
const (
	DefaultArticleCategory = "General"
	DefaultArticleAuthor   = "Admin"
)
