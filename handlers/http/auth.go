package httpHandler

import (
	"net/http"

	"storefront/controllers"
	"storefront/usecases"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the login and register screens. Each submit gets a
// fresh form, as each visit to those screens does.
type AuthHandler struct {
	users *usecases.UserUseCase
	// onChange runs after the signed-in user changes so the other screens
	// reload for the new identity.
	onChange func(c *gin.Context)
}

func NewAuthHandler(users *usecases.UserUseCase, onChange func(c *gin.Context)) *AuthHandler {
	return &AuthHandler{users: users, onChange: onChange}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state := controllers.NewLoginController(h.users).Submit(c.Request.Context(), req.Email, req.Password)
	if state.Phase != controllers.PhaseSuccess {
		c.JSON(http.StatusUnauthorized, gin.H{"error": state.Message, "state": state})
		return
	}
	h.changed(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed in", "state": state, "user_id": req.Email})
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state := controllers.NewRegisterController(h.users).Submit(c.Request.Context(), req.Name, req.Email, req.Password)
	switch state.Phase {
	case controllers.PhaseSuccess:
		h.changed(c)
		c.JSON(http.StatusCreated, gin.H{"message": "Account created", "state": state})
	case controllers.PhaseError:
		status := http.StatusBadRequest
		if state.Message == controllers.MsgEmailTaken {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": state.Message, "state": state})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected form state", "state": state})
	}
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.changed(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Session handles GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	ctx := c.Request.Context()
	signedIn, err := controllers.NewLoginController(h.users).CheckAutoLogin(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	userID, err := h.users.CurrentUserID(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"signed_in": signedIn, "user_id": userID})
}

func (h *AuthHandler) changed(c *gin.Context) {
	if h.onChange != nil {
		h.onChange(c)
	}
}
