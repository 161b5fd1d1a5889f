package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"primaland/server/internal/database"
	"primaland/server/internal/models"
)

// Admin handlers. Authentication is delegated to the fronting proxy; these
// handlers assume the request is already authorized.

func (h *Handler) ListAdminListings(c *gin.Context) {
	query := c.Query("q")

	if query == "" {
		listings, err := h.db.GetAllListings()
		if err != nil {
			h.logger.WithError(err).Error("Failed to list listings")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list listings"})
			return
		}
		c.JSON(http.StatusOK, listings)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	listings, err := h.db.SearchListings(query, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to search listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search listings"})
		return
	}

	c.JSON(http.StatusOK, listings)
}

func (h *Handler) CreateListing(c *gin.Context) {
	var listing models.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		h.logger.WithError(err).Error("Invalid listing payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing payload"})
		return
	}

	if listing.Title == "" || listing.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and price are required"})
		return
	}

	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	listing.Normalize()

	if err := h.db.CreateListing(&listing); err != nil {
		h.logger.WithError(err).Error("Failed to create listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	h.refreshCatalog()
	c.JSON(http.StatusCreated, listing)
}

func (h *Handler) UpdateListing(c *gin.Context) {
	var listing models.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		h.logger.WithError(err).Error("Invalid listing payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing payload"})
		return
	}

	listing.ID = c.Param("id")
	if listing.Title == "" || listing.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and price are required"})
		return
	}
	listing.Normalize()

	err := h.db.UpdateListing(&listing)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}

	h.refreshCatalog()
	c.JSON(http.StatusOK, listing)
}

func (h *Handler) DeleteListing(c *gin.Context) {
	err := h.db.DeleteListing(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}

	h.refreshCatalog()
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) ListAdminStories(c *gin.Context) {
	stories, err := h.db.GetAllStories()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list stories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stories"})
		return
	}

	c.JSON(http.StatusOK, stories)
}

func (h *Handler) CreateStory(c *gin.Context) {
	var story models.Story
	if err := c.ShouldBindJSON(&story); err != nil {
		h.logger.WithError(err).Error("Invalid story payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid story payload"})
		return
	}

	if story.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image URL is required"})
		return
	}
	if story.ID == "" {
		story.ID = uuid.NewString()
	}

	if err := h.db.CreateStory(&story); err != nil {
		h.logger.WithError(err).Error("Failed to create story")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create story"})
		return
	}

	c.JSON(http.StatusCreated, story)
}

func (h *Handler) UpdateStory(c *gin.Context) {
	var story models.Story
	if err := c.ShouldBindJSON(&story); err != nil {
		h.logger.WithError(err).Error("Invalid story payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid story payload"})
		return
	}

	story.ID = c.Param("id")
	err := h.db.UpdateStory(&story)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update story")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update story"})
		return
	}

	c.JSON(http.StatusOK, story)
}

func (h *Handler) DeleteStory(c *gin.Context) {
	err := h.db.DeleteStory(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete story")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) ListAdminArticles(c *gin.Context) {
	articles, err := h.db.GetAllArticles()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
		return
	}

	c.JSON(http.StatusOK, articles)
}

func (h *Handler) CreateArticle(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		h.logger.WithError(err).Error("Invalid article payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article payload"})
		return
	}

	if article.Title == "" || article.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	applyArticleDefaults(&article)

	if err := h.db.CreateArticle(&article); err != nil {
		h.logger.WithError(err).Error("Failed to create article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	c.JSON(http.StatusCreated, article)
}

func (h *Handler) UpdateArticle(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		h.logger.WithError(err).Error("Invalid article payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article payload"})
		return
	}

	article.ID = c.Param("id")
	if article.Title == "" || article.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}
	applyArticleDefaults(&article)

	err := h.db.UpdateArticle(&article)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *Handler) DeleteArticle(c *gin.Context) {
	err := h.db.DeleteArticle(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// applyArticleDefaults fills the editorial fields a back-office save may
// leave blank.
func applyArticleDefaults(article *models.Article) {
	if article.Category == "" {
		article.Category = models.DefaultArticleCategory
	}
	if article.Author == "" {
		article.Author = models.DefaultArticleAuthor
	}
}

func (h *Handler) UpdateSiteSettings(c *gin.Context) {
	var updated models.SiteSettings
	if err := c.ShouldBindJSON(&updated); err != nil {
		h.logger.WithError(err).Error("Invalid settings payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings payload"})
		return
	}

	if err := h.settings.Update(updated); err != nil {
		h.logger.WithError(err).Error("Failed to update site settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update site settings"})
		return
	}

	c.JSON(http.StatusOK, h.settings.Snapshot())
}

// refreshCatalog reloads the public snapshot after an admin write. Public
// views re-fetch rather than optimistically mutating the shared collection;
// a burst of writes schedules a single re-fetch after a quiet period.
func (h *Handler) refreshCatalog() {
	h.refreshDebounce.Schedule(func() {
		if err := h.catalog.Refresh(); err != nil {
			h.logger.WithError(err).Error("Failed to refresh catalog after write")
		}
	})
}
