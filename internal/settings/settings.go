// Package settings serves the site-wide configuration (active language,
// running marquee text, contact details) as an immutable snapshot. Views
// read the snapshot; an admin update persists the new values and then
// reloads the snapshot explicitly, so nothing reads ambient mutable state.
package settings

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"primaland/server/internal/models"
)

// Store is the persistence the manager loads from and saves to.
type Store interface {
	GetSiteSettings() (models.SiteSettings, error)
	SaveSiteSettings(models.SiteSettings) error
}

// Manager holds the current settings snapshot.
type Manager struct {
	store  Store
	logger *logrus.Logger

	mu      sync.RWMutex
	current models.SiteSettings
}

func NewManager(store Store, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Manager{
		store:   store,
		logger:  logger,
		current: models.DefaultSiteSettings(),
	}
}

// Load replaces the snapshot with the stored settings.
func (m *Manager) Load() error {
	stored, err := m.store.GetSiteSettings()
	if err != nil {
		m.logger.WithError(err).Error("Failed to load site settings")
		return err
	}

	m.mu.Lock()
	m.current = stored
	m.mu.Unlock()
	return nil
}

// Snapshot returns the current settings by value.
func (m *Manager) Snapshot() models.SiteSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Update persists the new settings and reloads the snapshot.
func (m *Manager) Update(updated models.SiteSettings) error {
	if err := m.store.SaveSiteSettings(updated); err != nil {
		return err
	}
	return m.Load()
}
