package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	analyticsctrl "barorder/internal/analytics/controller"
	"barorder/internal/auth"
	authctrl "barorder/internal/auth/controller"
	cartctrl "barorder/internal/cart/controller"
	orderctrl "barorder/internal/order/controller"
	productctrl "barorder/internal/product/controller"
	tablectrl "barorder/internal/table/controller"
)

// Handlers groups every controller the router mounts.
type Handlers struct {
	Sessions    *cartctrl.Controller
	Products    *productctrl.Controller
	Fulfillment *orderctrl.FulfillmentController
	Feed        http.Handler
	Analytics   *analyticsctrl.Controller
	Login       *authctrl.Controller
	Tables      *tablectrl.Controller
}

func NewRouter(h Handlers, tokens *auth.Tokens, limiter *IPRateLimiter, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(traceID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware(logger))

			r.Get("/products", h.Products.HandleListProducts)

			r.Post("/sessions", h.Sessions.HandleCreateSession)
			r.Route("/sessions/{sessionId}", func(r chi.Router) {
				r.Get("/", h.Sessions.HandleGetSession)
				r.Delete("/", h.Sessions.HandleDeleteSession)
				r.Put("/table", h.Sessions.HandleChangeTable)
				r.Post("/items", h.Sessions.HandleAddItem)
				r.Delete("/items", h.Sessions.HandleClearCart)
				r.Put("/items/{productId}", h.Sessions.HandleSetQuantity)
				r.Delete("/items/{productId}", h.Sessions.HandleRemoveItem)
				r.Post("/checkout", h.Sessions.HandleCheckout)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(limiter.Middleware(logger)).Post("/login", h.Login.HandleLogin)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin(tokens, logger))

				r.Get("/orders", h.Fulfillment.HandleListActiveOrders)
				r.Method(http.MethodGet, "/orders/feed", h.Feed)
				r.Post("/orders/{orderId}/status", h.Fulfillment.HandleAdvanceStatus)

				r.Get("/products", h.Products.HandleListProducts)
				r.Post("/products", h.Products.HandleCreateProduct)
				r.Get("/products/export", h.Products.HandleExportProducts)
				r.Put("/products/{productId}", h.Products.HandleUpdateProduct)
				r.Delete("/products/{productId}", h.Products.HandleDeleteProduct)

				r.Get("/analytics", h.Analytics.HandleSummary)
				r.Get("/analytics/export", h.Analytics.HandleExport)

				r.Get("/tables/{number}/link", h.Tables.HandleTableLink)
			})
		})
	})

	return r
}
