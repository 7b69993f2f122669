package httpHandler

import (
	"context"
	"net/http"

	"storefront/controllers"
	"storefront/usecases"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favorites *usecases.FavoriteUseCase
	users     *usecases.UserUseCase
	refresh   func(ctx context.Context) error
}

func NewFavoriteHandler(favorites *usecases.FavoriteUseCase, users *usecases.UserUseCase, refresh func(ctx context.Context) error) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, users: users, refresh: refresh}
}

func (h *FavoriteHandler) currentUser(c *gin.Context) (string, bool) {
	userID, err := h.users.CurrentUserID(c.Request.Context())
	if err == nil && userID == "" {
		err = controllers.ErrNotSignedIn
	}
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return userID, true
}

// GetFavorites handles GET /api/v1/favorites
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	favorites, err := h.favorites.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": favorites, "count": len(favorites)})
}

// ClearFavorites handles DELETE /api/v1/favorites
func (h *FavoriteHandler) ClearFavorites(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	if err := h.favorites.Clear(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	if h.refresh != nil {
		_ = h.refresh(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorites cleared"})
}
