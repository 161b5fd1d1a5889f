package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"primaland/server/internal/catalog"
	"primaland/server/internal/database"
	"primaland/server/internal/imaging"
	"primaland/server/internal/mapurl"
	"primaland/server/internal/models"
	"primaland/server/internal/mortgage"
	"primaland/server/internal/search"
	"primaland/server/internal/settings"
	"primaland/server/internal/storage"
)

type Handler struct {
	db       *database.Database
	catalog  *catalog.Catalog
	pipeline *imaging.Pipeline
	store    storage.Uploader
	settings *settings.Manager
	logger   *logrus.Logger

	// refreshDebounce coalesces catalog refreshes triggered by bursts of
	// admin writes into a single re-fetch after a quiet period
	refreshDebounce *search.Debouncer
}

func NewHandler(
	db *database.Database,
	listingCatalog *catalog.Catalog,
	pipeline *imaging.Pipeline,
	store storage.Uploader,
	settingsManager *settings.Manager,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:              db,
		catalog:         listingCatalog,
		pipeline:        pipeline,
		store:           store,
		settings:        settingsManager,
		logger:          logger,
		refreshDebounce: search.NewDebouncer(search.DefaultDebounceDelay),
	}
}

// GetListings filters the in-memory catalog against the request's search
// state. An empty result is a valid, displayable state, not an error.
func (h *Handler) GetListings(c *gin.Context) {
	var filters models.SearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		h.logger.WithError(err).Error("Failed to parse search filters")
	}

	listings, loaded := h.catalog.Listings()
	if !loaded {
		h.logger.Error("Listing catalog has never loaded")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Listings are temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, search.Filter(listings, filters))
}

func (h *Handler) GetListingByID(c *gin.Context) {
	listing, err := h.db.GetListingByID(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing"})
		return
	}

	listing.Normalize()
	c.JSON(http.StatusOK, listing)
}

func (h *Handler) GetPromoListings(c *gin.Context) {
	listings, err := h.db.GetPromoListings()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get promo listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get promo listings"})
		return
	}

	normalizeAll(listings)
	c.JSON(http.StatusOK, listings)
}

func (h *Handler) GetFeaturedListings(c *gin.Context) {
	listings, err := h.db.GetFeaturedListings()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get featured listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get featured listings"})
		return
	}

	normalizeAll(listings)
	c.JSON(http.StatusOK, listings)
}

// normalizeAll repairs listings fetched outside the catalog, which applies
// the same repair on refresh. Responses never carry malformed records.
func normalizeAll(listings []models.Listing) {
	for i := range listings {
		listings[i].Normalize()
	}
}

// GetSuggestions serves the search-as-you-type dropdown. A catalog that has
// not loaded degrades to empty groups rather than an error in the input field.
func (h *Handler) GetSuggestions(c *gin.Context) {
	listings, loaded := h.catalog.Listings()
	if !loaded {
		c.JSON(http.StatusOK, search.Suggestions{
			Locations: []string{},
			Listings:  []models.ListingSummary{},
		})
		return
	}

	c.JSON(http.StatusOK, search.Suggest(listings, c.Query("q")))
}

// GetMortgageEstimate computes the monthly installment for the KPR widget.
func (h *Handler) GetMortgageEstimate(c *gin.Context) {
	price, err := strconv.ParseInt(c.Query("price"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return
	}
	downPayment, err := strconv.ParseFloat(c.DefaultQuery("dp", "10"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid down payment percent"})
		return
	}
	rate, err := strconv.ParseFloat(c.DefaultQuery("rate", "8"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interest rate"})
		return
	}
	tenor, err := strconv.Atoi(c.DefaultQuery("tenor", "15"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenor"})
		return
	}

	estimate, err := mortgage.Calculate(mortgage.Input{
		Price:              price,
		DownPaymentPercent: downPayment,
		AnnualRatePercent:  rate,
		TenorYears:         tenor,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, estimate)
}

func (h *Handler) GetStories(c *gin.Context) {
	stories, err := h.db.GetActiveStories()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get stories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stories"})
		return
	}

	c.JSON(http.StatusOK, stories)
}

// GetArticles returns every published article, newest first, for the
// insights index page.
func (h *Handler) GetArticles(c *gin.Context) {
	articles, err := h.db.GetAllArticles()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get articles"})
		return
	}

	c.JSON(http.StatusOK, articles)
}

func (h *Handler) GetArticleByID(c *gin.Context) {
	article, err := h.db.GetArticleByID(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get article"})
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *Handler) GetSiteSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Snapshot())
}

// GetMapEmbed normalizes a pasted map link for the listing detail page.
func (h *Handler) GetMapEmbed(c *gin.Context) {
	c.JSON(http.StatusOK, mapurl.Normalize(c.Query("url")))
}
