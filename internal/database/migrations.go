package database

import "primaland/server/internal/models"

func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(
		&models.Listing{},
		&models.Story{},
		&models.Article{},
		&models.SiteSettings{},
	); err != nil {
		return err
	}

	// Index the flag columns used by the public promo/featured endpoints
	if err := d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_is_promo
		ON listings(is_promo);
	`).Error; err != nil {
		return err
	}

	return d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_is_featured
		ON listings(is_featured);
	`).Error
}
