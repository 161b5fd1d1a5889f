package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"primaland/server/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// GetDB exposes the underlying gorm handle for tests and migrations.
func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --- Listings ---

// GetAllListings returns every listing, newest first. This is the arrival
// order the search engine and suggestion index preserve.
func (d *Database) GetAllListings() ([]models.Listing, error) {
	var listings []models.Listing
	err := d.db.Order("created_at DESC").Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	return listings, nil
}

func (d *Database) GetListingByID(id string) (*models.Listing, error) {
	var listing models.Listing
	err := d.db.First(&listing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetPromoListings returns listings flagged as promo, newest first.
func (d *Database) GetPromoListings() ([]models.Listing, error) {
	var listings []models.Listing
	err := d.db.Where("is_promo = ?", true).Order("created_at DESC").Find(&listings).Error
	return listings, err
}

// GetFeaturedListings returns listings flagged as featured, newest first.
func (d *Database) GetFeaturedListings() ([]models.Listing, error) {
	var listings []models.Listing
	err := d.db.Where("is_featured = ?", true).Order("created_at DESC").Find(&listings).Error
	return listings, err
}

// SearchListings returns up to limit listings whose title or location
// contains the query, case-insensitive, newest first.
func (d *Database) SearchListings(query string, limit int) ([]models.Listing, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var listings []models.Listing
	err := d.db.
		Where("LOWER(title) LIKE ? OR LOWER(location) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&listings).Error
	return listings, err
}

func (d *Database) CreateListing(listing *models.Listing) error {
	return d.db.Create(listing).Error
}

func (d *Database) UpdateListing(listing *models.Listing) error {
	result := d.db.Model(&models.Listing{}).Where("id = ?", listing.ID).
		Select("*").Omit("id", "created_at").Updates(listing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) DeleteListing(id string) error {
	result := d.db.Delete(&models.Listing{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Stories ---

// GetActiveStories returns active stories in display order.
func (d *Database) GetActiveStories() ([]models.Story, error) {
	var stories []models.Story
	err := d.db.Where("is_active = ?", true).Order("display_order ASC").Find(&stories).Error
	return stories, err
}

// GetAllStories returns every story in display order, for the back-office.
func (d *Database) GetAllStories() ([]models.Story, error) {
	var stories []models.Story
	err := d.db.Order("display_order ASC").Find(&stories).Error
	return stories, err
}

func (d *Database) CreateStory(story *models.Story) error {
	return d.db.Create(story).Error
}

func (d *Database) UpdateStory(story *models.Story) error {
	result := d.db.Model(&models.Story{}).Where("id = ?", story.ID).
		Select("*").Omit("id", "created_at").Updates(story)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) DeleteStory(id string) error {
	result := d.db.Delete(&models.Story{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Articles ---

// GetAllArticles returns every article, newest first.
func (d *Database) GetAllArticles() ([]models.Article, error) {
	var articles []models.Article
	err := d.db.Order("created_at DESC").Find(&articles).Error
	return articles, err
}

func (d *Database) GetArticleByID(id string) (*models.Article, error) {
	var article models.Article
	err := d.db.First(&article, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (d *Database) CreateArticle(article *models.Article) error {
	return d.db.Create(article).Error
}

func (d *Database) UpdateArticle(article *models.Article) error {
	result := d.db.Model(&models.Article{}).Where("id = ?", article.ID).
		Select("*").Omit("id", "created_at").Updates(article)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) DeleteArticle(id string) error {
	result := d.db.Delete(&models.Article{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Site settings ---

// GetSiteSettings returns the stored settings row, or the defaults when no
// admin has saved any yet.
func (d *Database) GetSiteSettings() (models.SiteSettings, error) {
	var settings models.SiteSettings
	err := d.db.First(&settings, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultSiteSettings(), nil
	}
	if err != nil {
		return models.SiteSettings{}, err
	}
	return settings, nil
}

func (d *Database) SaveSiteSettings(settings models.SiteSettings) error {
	settings.ID = 1
	return d.db.Save(&settings).Error
}
