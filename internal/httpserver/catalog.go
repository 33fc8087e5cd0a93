package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/catalog"
)

func (h *handlers) recentProducts(c *gin.Context) {
	handles := catalog.ParseHandles(c.Query("handles"))
	items, err := h.deps.CatalogSvc.RecentProducts(c.Request.Context(), handles, visitorCountry(c))
	if err != nil {
		h.logger.Printf("catalog handler: recent products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products", "items": []domain.ProductCard{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *handlers) listReviews(c *gin.Context) {
	perPage := queryInt(c, "per_page", 10)
	page := queryInt(c, "page", 1)
	c.JSON(http.StatusOK, gin.H{"reviews": h.deps.ReviewSvc.List(c.Request.Context(), perPage, page)})
}
