package httpHandler

import (
	"context"
	"net/http"
	"strconv"

	"storefront/entities"
	"storefront/usecases"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves category and product CRUD.
type ProductHandler struct {
	useCase *usecases.CatalogUseCase
	// refresh reloads the catalog screen after a write.
	refresh func(ctx context.Context) error
}

func NewProductHandler(useCase *usecases.CatalogUseCase, refresh func(ctx context.Context) error) *ProductHandler {
	return &ProductHandler{useCase: useCase, refresh: refresh}
}

func (h *ProductHandler) changed(c *gin.Context) {
	if h.refresh != nil {
		_ = h.refresh(c.Request.Context())
	}
}

// ============= Categories =============

// CreateCategory handles POST /api/v1/categories
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var category entities.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		bindError(c, err)
		return
	}
	if err := h.useCase.AddCategory(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}
	h.changed(c)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Category created successfully",
		"data":    category,
	})
}

// GetAllCategories handles GET /api/v1/categories
func (h *ProductHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories, "count": len(categories)})
}

// GetCategory handles GET /api/v1/categories/:id
func (h *ProductHandler) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	category, err := h.useCase.GetCategory(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

// UpdateCategory handles PUT /api/v1/categories/:id
func (h *ProductHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var category entities.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		bindError(c, err)
		return
	}
	category.ID = id

	if err := h.useCase.UpdateCategory(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}
	h.changed(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Category updated successfully",
		"data":    category,
	})
}

// DeleteCategory handles DELETE /api/v1/categories/:id
// Products in the category are deleted with it.
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.useCase.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.changed(c)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// ============= Products =============

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product entities.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		bindError(c, err)
		return
	}
	if err := h.useCase.AddProduct(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}
	h.changed(c)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    product,
	})
}

// GetAllProducts handles GET /api/v1/products[?category_id=]
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		products []entities.Product
		err      error
	)
	if raw := c.Query("category_id"); raw != "" {
		categoryID, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		products, err = h.useCase.ListProductsByCategory(ctx, uint(categoryID))
	} else {
		products, err = h.useCase.ListProducts(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products, "count": len(products)})
}

// GetProduct handles GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	product, err := h.useCase.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// UpdateProduct handles PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var product entities.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		bindError(c, err)
		return
	}
	product.ID = id

	if err := h.useCase.UpdateProduct(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}
	h.changed(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/v1/products/:id
// Favorites and cart lines for the product go with it.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.changed(c)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
