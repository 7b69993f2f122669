package server

import (
	"context"
	"errors"
	"net/http"

	"storefront/cart"
	"storefront/confs"
	"storefront/controllers"
	"storefront/db"
	"storefront/handlers"
	httpHandler "storefront/handlers/http"
	"storefront/metrics"
	"storefront/repositories"
	"storefront/services"
	"storefront/session"
	"storefront/usecases"
	"storefront/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	app      *gin.Engine
	http     *http.Server
	db       db.Database
	log      *logrus.Logger
	notifier *services.CheckoutNotifier
	states   *handlers.StateHandler

	catalog *controllers.CatalogController
	cart    *controllers.CartController
}

func NewServer(cfg *confs.Config, database db.Database, store session.Store, log *logrus.Logger) *Server {
	s := &Server{
		app:      gin.New(),
		db:       database,
		log:      log,
		notifier: services.NewCheckoutNotifier(cfg.CheckoutWebhookURL, log),
	}
	s.http = &http.Server{Addr: cfg.HTTPAddr, Handler: s.app}
	s.routes(store)
	return s
}

func (s *Server) routes(store session.Store) {
	s.app.Use(gin.Recovery(), requestID(), requestLogger(s.log), metrics.Middleware())

	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}
	s.app.Use(cors.New(config))

	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})
	s.app.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Initialize repositories
	userRepo := repositories.NewUserGormRepository(s.db)
	categoryRepo := repositories.NewCategoryGormRepository(s.db)
	productRepo := repositories.NewProductGormRepository(s.db)
	favoriteRepo := repositories.NewFavoriteGormRepository(s.db)
	cartItemRepo := repositories.NewCartItemGormRepository(s.db)

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo, store)
	catalogUseCase := usecases.NewCatalogUseCase(categoryRepo, productRepo)
	favoriteUseCase := usecases.NewFavoriteUseCase(favoriteRepo)
	carts := cart.NewManager(cartItemRepo)

	// Screens
	s.catalog = controllers.NewCatalogController(catalogUseCase, favoriteUseCase, userUseCase, carts, s.log)
	s.cart = controllers.NewCartController(carts, catalogUseCase, userUseCase, s.notifier, s.log)
	carts.Subscribe(s.cart.Sync)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(userUseCase, func(c *gin.Context) { s.Load(c.Request.Context()) })
	catalogHandler := httpHandler.NewCatalogHandler(s.catalog)
	productHandler := httpHandler.NewProductHandler(catalogUseCase, s.reload)
	favoriteHandler := httpHandler.NewFavoriteHandler(favoriteUseCase, userUseCase, s.catalog.Load)
	cartHandler := httpHandler.NewCartHandler(s.cart)
	s.states = handlers.NewStateHandler(ws.NewManager(), s.catalog, s.cart, s.log)

	api := s.app.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/session", authHandler.Session)
		}

		catalog := api.Group("/catalog")
		{
			catalog.GET("", catalogHandler.GetState)
			catalog.POST("/refresh", catalogHandler.Refresh)
			catalog.PUT("/category", catalogHandler.SelectCategory)
			catalog.PUT("/search", catalogHandler.Search)
			catalog.DELETE("/message", catalogHandler.ClearMessage)
			catalog.GET("/products/:id", catalogHandler.GetProduct)
			catalog.POST("/products/:id/favorite", catalogHandler.ToggleFavorite)
			catalog.POST("/products/:id/cart", catalogHandler.AddToCart)
		}

		categories := api.Group("/categories")
		{
			categories.POST("", productHandler.CreateCategory)
			categories.GET("", productHandler.GetAllCategories)
			categories.GET("/:id", productHandler.GetCategory)
			categories.PUT("/:id", productHandler.UpdateCategory)
			categories.DELETE("/:id", productHandler.DeleteCategory)
		}

		products := api.Group("/products")
		{
			products.POST("", productHandler.CreateProduct)
			products.GET("", productHandler.GetAllProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		favorites := api.Group("/favorites")
		{
			favorites.GET("", favoriteHandler.GetFavorites)
			favorites.DELETE("", favoriteHandler.ClearFavorites)
		}

		cartRoutes := api.Group("/cart")
		{
			cartRoutes.GET("", cartHandler.GetCart)
			cartRoutes.POST("/checkout", cartHandler.Checkout)
			cartRoutes.DELETE("/message", cartHandler.ClearMessage)
			cartRoutes.POST("/items/:id/increase", cartHandler.Increase)
			cartRoutes.POST("/items/:id/decrease", cartHandler.Decrease)
			cartRoutes.PUT("/items/:id/note", cartHandler.SetNote)
			cartRoutes.DELETE("/items/:id", cartHandler.Remove)
		}

		api.GET("/screens/connected", s.states.GetConnectedClients)
	}

	s.app.GET("/ws", s.states.HandleStateWS)
}

// Load refreshes both screens. Failures are kept in the screen state.
func (s *Server) Load(ctx context.Context) {
	if err := s.catalog.Load(ctx); err != nil {
		s.log.WithError(err).Warn("catalog load failed")
	}
	if err := s.cart.Load(ctx); err != nil {
		s.log.WithError(err).Warn("cart load failed")
	}
}

// reload adapts Load to the handlers' refresh hook.
func (s *Server) reload(ctx context.Context) error {
	s.Load(ctx)
	return nil
}

func (s *Server) Handler() http.Handler { return s.app }

// Start loads the screens and serves until Shutdown.
func (s *Server) Start() error {
	s.Load(context.Background())
	s.log.WithField("addr", s.http.Addr).Info("storefront listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, then waits for pending checkout
// notifications.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.states.Close()
	s.notifier.Wait()
	return err
}
