package httpHandler

import (
	"net/http"

	"storefront/controllers"

	"github.com/gin-gonic/gin"
)

// CatalogHandler drives the catalog screen.
type CatalogHandler struct {
	screen *controllers.CatalogController
}

func NewCatalogHandler(screen *controllers.CatalogController) *CatalogHandler {
	return &CatalogHandler{screen: screen}
}

type selectCategoryRequest struct {
	CategoryID *int64 `json:"category_id" binding:"required"`
}

type searchRequest struct {
	Query string `json:"query"`
}

// GetState handles GET /api/v1/catalog
func (h *CatalogHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.screen.State().Value()})
}

// Refresh handles POST /api/v1/catalog/refresh
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.screen.Load(c.Request.Context()); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "data": h.screen.State().Value()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.screen.State().Value()})
}

// SelectCategory handles PUT /api/v1/catalog/category
// -1 selects every category, -2 only favorites.
func (h *CatalogHandler) SelectCategory(c *gin.Context) {
	var req selectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.screen.SelectCategory(controllers.CategoryFilter(*req.CategoryID))})
}

// Search handles PUT /api/v1/catalog/search
func (h *CatalogHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.screen.Search(req.Query)})
}

// ToggleFavorite handles POST /api/v1/catalog/products/:id/favorite
func (h *CatalogHandler) ToggleFavorite(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.screen.ToggleFavorite(c.Request.Context(), id); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "data": h.screen.State().Value()})
		return
	}
	state := h.screen.State().Value()
	c.JSON(http.StatusOK, gin.H{"message": state.Message, "favorite": state.IsFavorite(id), "data": state})
}

// AddToCart handles POST /api/v1/catalog/products/:id/cart
func (h *CatalogHandler) AddToCart(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.screen.AddToCart(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.screen.State().Value().Message})
}

// GetProduct handles GET /api/v1/catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	product, err := h.screen.Product(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     product,
		"favorite": h.screen.State().Value().IsFavorite(id),
	})
}

// ClearMessage handles DELETE /api/v1/catalog/message
func (h *CatalogHandler) ClearMessage(c *gin.Context) {
	h.screen.ClearMessage()
	c.Status(http.StatusNoContent)
}
