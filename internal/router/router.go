package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shop-catalog-api/internal/config"
	"shop-catalog-api/internal/handler"
	"shop-catalog-api/internal/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Shop     *handler.ShopHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler

	// Health reports backend readiness. Nil means liveness-only.
	Health func(ctx context.Context) error
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if h.Health != nil {
			if err := h.Health(req.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", middleware.MetricsHandler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.Post("/refresh", h.Auth.Refresh)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/shops", func(shops chi.Router) {
			shops.Get("/", h.Shop.List)
			shops.With(authMiddleware.RequireAuth).Post("/", h.Shop.Create)

			shops.Route("/{shopID}", func(shop chi.Router) {
				shop.Get("/", h.Shop.Get)
				shop.With(authMiddleware.RequireAuth).Put("/", h.Shop.Update)
				shop.With(authMiddleware.RequireAuth).Delete("/", h.Shop.Delete)

				shop.Route("/categories", func(categories chi.Router) {
					categories.Get("/", h.Category.List)
					categories.With(authMiddleware.RequireAuth).Post("/", h.Category.Create)

					categories.Route("/{categoryID}", func(category chi.Router) {
						category.Get("/", h.Category.Get)
						category.With(authMiddleware.RequireAuth).Put("/", h.Category.Update)
						category.With(authMiddleware.RequireAuth).Delete("/", h.Category.Delete)

						category.Route("/products", func(products chi.Router) {
							products.Get("/", h.Product.List)
							products.With(authMiddleware.RequireAuth).Post("/", h.Product.Create)

							products.Route("/{productID}", func(product chi.Router) {
								product.Get("/", h.Product.Get)
								product.With(authMiddleware.RequireAuth).Put("/", h.Product.Update)
								product.With(authMiddleware.RequireAuth).Delete("/", h.Product.Delete)
							})
						})
					})
				})
			})
		})
	})

	return r
}
