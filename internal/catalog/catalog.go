// Package catalog keeps the public site's in-memory view of the listing
// collection. The search engine and the suggestion index both read the same
// snapshot, which is replaced wholesale on refresh and never mutated in
// place.
package catalog

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"primaland/server/internal/models"
)

// Source is the external store the catalog refreshes from.
type Source interface {
	GetAllListings() ([]models.Listing, error)
}

// Catalog holds the current listing snapshot. Overlapping refreshes follow
// last-fetch-wins: a slow response that was superseded by a newer refresh is
// discarded instead of clobbering fresher data.
type Catalog struct {
	source Source
	logger *logrus.Logger

	mu       sync.RWMutex
	listings []models.Listing
	loaded   bool
	issued   uint64 // refresh generations handed out
	applied  uint64 // generation of the current snapshot
}

func NewCatalog(source Source, logger *logrus.Logger) *Catalog {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Catalog{
		source: source,
		logger: logger,
	}
}

// Refresh fetches the collection from the source and installs it as the new
// snapshot, unless a newer refresh already completed in the meantime.
func (c *Catalog) Refresh() error {
	c.mu.Lock()
	c.issued++
	generation := c.issued
	c.mu.Unlock()

	listings, err := c.source.GetAllListings()
	if err != nil {
		c.logger.WithError(err).Error("Failed to refresh listing catalog")
		return err
	}

	repaired := 0
	for i := range listings {
		if listings[i].Normalize() {
			repaired++
			c.logger.WithField("listing_id", listings[i].ID).
				Warn("Repaired malformed listing record")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation < c.applied {
		c.logger.WithFields(logrus.Fields{
			"generation": generation,
			"applied":    c.applied,
		}).Debug("Discarding stale catalog fetch")
		return nil
	}

	c.applied = generation
	c.listings = listings
	c.loaded = true

	c.logger.WithFields(logrus.Fields{
		"count":    len(listings),
		"repaired": repaired,
	}).Info("Listing catalog refreshed")
	return nil
}

// Listings returns the current snapshot and whether any refresh has ever
// completed. Callers must treat the returned slice as read-only.
func (c *Catalog) Listings() ([]models.Listing, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.listings, c.loaded
}

// Len returns the number of listings in the current snapshot.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.listings)
}
