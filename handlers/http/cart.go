package httpHandler

import (
	"net/http"

	"storefront/controllers"

	"github.com/gin-gonic/gin"
)

// CartHandler drives the cart screen.
type CartHandler struct {
	screen *controllers.CartController
}

func NewCartHandler(screen *controllers.CartController) *CartHandler {
	return &CartHandler{screen: screen}
}

type noteRequest struct {
	Note string `json:"note"`
}

func (h *CartHandler) reply(c *gin.Context, err error) {
	state := h.screen.State().Value()
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": state.Error, "data": state})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": state})
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	h.reply(c, h.screen.Load(c.Request.Context()))
}

// Increase handles POST /api/v1/cart/items/:id/increase
func (h *CartHandler) Increase(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.reply(c, h.screen.IncreaseQuantity(c.Request.Context(), id))
}

// Decrease handles POST /api/v1/cart/items/:id/decrease
func (h *CartHandler) Decrease(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.reply(c, h.screen.DecreaseQuantity(c.Request.Context(), id))
}

// Remove handles DELETE /api/v1/cart/items/:id
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.reply(c, h.screen.RemoveFromCart(c.Request.Context(), id))
}

// SetNote handles PUT /api/v1/cart/items/:id/note
func (h *CartHandler) SetNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.reply(c, h.screen.SetNote(c.Request.Context(), id, req.Note))
}

// Checkout handles POST /api/v1/cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	if err := h.screen.Checkout(c.Request.Context()); err != nil {
		h.reply(c, err)
		return
	}
	state := h.screen.State().Value()
	c.JSON(http.StatusOK, gin.H{"message": state.Message, "data": state})
}

// ClearMessage handles DELETE /api/v1/cart/message
func (h *CartHandler) ClearMessage(c *gin.Context) {
	h.screen.ClearMessage()
	c.Status(http.StatusNoContent)
}
