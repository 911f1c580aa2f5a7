package http

import (
	_ "github.com/DRSN-tech/storefront/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// UseCases — зависимости обработчиков.
type UseCases struct {
	Catalog  usecase.CatalogUC
	Admin    usecase.CatalogAdminUC
	Sessions usecase.SessionUC
	Checkout usecase.CheckoutUC
}

func (r *Router) Init(uc UseCases, swaggerURL string) {
	r.router.Use(middleware.RequestID, middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(swaggerURL), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerCatalogRoutes(v1, NewCatalogHandler(uc.Catalog, r.logger))
		registerSessionRoutes(v1, NewSessionHandler(uc.Sessions, uc.Catalog, uc.Checkout, r.logger))
		registerAdminRoutes(v1, NewAdminHandler(uc.Admin, r.logger))
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/{id}", h.getProduct)
	})
	router.Get("/categories", h.listCategories)
}

func registerSessionRoutes(router chi.Router, h *SessionHandler) {
	router.Post("/sessions", h.createSession)

	router.Route("/sessions/{sid}", func(s chi.Router) {
		s.Route("/cart", func(c chi.Router) {
			c.Get("/", h.getCart)
			c.Delete("/", h.clearCart)
			c.Post("/items", h.addToCart)
			c.Delete("/items/{pid}", h.removeFromCart)
			c.Post("/items/{pid}/increase", h.increaseQuantity)
			c.Post("/items/{pid}/decrease", h.decreaseQuantity)
		})

		s.Route("/wishlist", func(wl chi.Router) {
			wl.Get("/", h.getWishlist)
			wl.Post("/", h.addToWishlist)
			wl.Delete("/{pid}", h.removeFromWishlist)
		})

		s.Get("/filter", h.getFilter)
		s.Put("/filter", h.updateFilter)
		s.Get("/products", h.listSessionProducts)
		s.Post("/checkout", h.checkout)
	})
}

func registerAdminRoutes(router chi.Router, h *AdminHandler) {
	router.Route("/admin", func(a chi.Router) {
		a.Route("/products", func(pr chi.Router) {
			pr.Get("/", h.listProducts)
			pr.Post("/", h.addProduct)
			pr.Put("/{id}", h.updateProduct)
			pr.Delete("/{id}", h.deleteProduct)
		})

		a.Route("/categories", func(c chi.Router) {
			c.Get("/", h.listCategories)
			c.Post("/", h.addCategory)
			c.Put("/{id}", h.updateCategory)
			c.Delete("/{id}", h.deleteCategory)
		})

		a.Get("/stats", h.stats)
		a.Get("/storage", h.storage)
		a.Post("/cache/clear", h.clearCache)
		a.Post("/catalog/reset", h.resetCatalog)
	})
}
