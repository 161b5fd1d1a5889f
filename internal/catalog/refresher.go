package catalog

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Refresher re-fetches the catalog on a fixed interval so the public site
// observes back-office edits without restarting the server.
type Refresher struct {
	catalog  *Catalog
	logger   *logrus.Logger
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewRefresher(c *Catalog, interval time.Duration, logger *logrus.Logger) *Refresher {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Refresher{
		catalog:  c,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the periodic refresh loop.
func (r *Refresher) Start() {
	r.wg.Add(1)
	go r.run()
}

func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			if err := r.catalog.Refresh(); err != nil {
				r.logger.WithError(err).Error("Scheduled catalog refresh failed")
			}
		}
	}
}

// Stop gracefully stops the refresh loop.
func (r *Refresher) Stop() {
	close(r.stopChan)
	r.wg.Wait()
}
