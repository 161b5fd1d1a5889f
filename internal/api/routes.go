package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"primaland/server/config"
)

// SetupRoutes wires every public and admin endpoint onto the router.
func SetupRoutes(router *gin.Engine, handler *Handler, cfg *config.Config) {
	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		api.GET("/listings", handler.GetListings)
		api.GET("/listings/promo", handler.GetPromoListings)
		api.GET("/listings/featured", handler.GetFeaturedListings)
		api.GET("/listings/:id", handler.GetListingByID)
		api.GET("/suggestions", handler.GetSuggestions)
		api.GET("/mortgage", handler.GetMortgageEstimate)
		api.GET("/stories", handler.GetStories)
		api.GET("/articles", handler.GetArticles)
		api.GET("/articles/:id", handler.GetArticleByID)
		api.GET("/settings", handler.GetSiteSettings)
		api.GET("/map-embed", handler.GetMapEmbed)

		admin := api.Group("/admin")
		{
			admin.GET("/listings", handler.ListAdminListings)
			admin.POST("/listings", handler.CreateListing)
			admin.PUT("/listings/:id", handler.UpdateListing)
			admin.DELETE("/listings/:id", handler.DeleteListing)

			admin.GET("/stories", handler.ListAdminStories)
			admin.POST("/stories", handler.CreateStory)
			admin.PUT("/stories/:id", handler.UpdateStory)
			admin.DELETE("/stories/:id", handler.DeleteStory)

			admin.GET("/articles", handler.ListAdminArticles)
			admin.POST("/articles", handler.CreateArticle)
			admin.PUT("/articles/:id", handler.UpdateArticle)
			admin.DELETE("/articles/:id", handler.DeleteArticle)

			admin.PUT("/settings", handler.UpdateSiteSettings)
			admin.POST("/uploads", handler.UploadImages)
		}
	}
}
