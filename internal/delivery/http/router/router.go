// Package router wires the HTTP route table to the handlers.
package router

import (
	"net/http"

	"bazar/internal/delivery/http/middleware"
	"bazar/internal/delivery/http/router/handler"
	"bazar/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// Params collects the handlers and middleware the route table needs.
type Params struct {
	fx.In

	AuthMiddleware *middleware.AuthMiddleware
	AuthHandler    *handler.AuthHandler
	ProductHandler *handler.ProductHandler
	SellerHandler  *handler.SellerHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	ReviewHandler  *handler.ReviewHandler
	AdminHandler   *handler.AdminHandler
}

// Router registers the route table on an echo instance.
type Router interface {
	RegisterRoutes(e *echo.Echo)
}

type router struct {
	params Params
}

// New creates a Router.
func New(params Params) Router {
	return &router{params: params}
}

// RegisterRoutes lays out the whole API surface. Role guards sit on the
// groups; ownership checks stay inside the use cases.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	// Public endpoints.
	api.POST("/auth/customer/register", r.params.AuthHandler.RegisterCustomer)
	api.POST("/auth/login", r.params.AuthHandler.Login)
	api.POST("/auth/logout", r.params.AuthHandler.Logout)

	api.GET("/products", r.params.ProductHandler.List)
	api.GET("/products/:id", r.params.ProductHandler.Get)
	api.GET("/products/:id/reviews", r.params.ReviewHandler.ListByProduct)

	api.GET("/sellers", r.params.SellerHandler.List)
	api.GET("/sellers/:id", r.params.SellerHandler.Get)
	api.GET("/sellers/:id/products", r.params.ProductHandler.ListBySeller)
	api.GET("/sellers/:id/qrcode", r.params.SellerHandler.QRCode)
	api.GET("/sellers/:id/stats", r.params.SellerHandler.Stats)

	// Any authenticated account.
	account := api.Group("/auth", auth.Authenticate)
	account.GET("/me", r.params.AuthHandler.Me)
	account.PUT("/me", r.params.AuthHandler.UpdateMe)

	// Customer endpoints.
	customer := api.Group("", auth.Authenticate, auth.RequireRole(entity.RoleCustomer))
	customer.GET("/cart", r.params.CartHandler.View)
	customer.POST("/cart", r.params.CartHandler.Add)
	customer.PUT("/cart/:id", r.params.CartHandler.UpdateQuantity)
	customer.DELETE("/cart/:id", r.params.CartHandler.Remove)
	customer.POST("/orders", r.params.OrderHandler.Place)
	customer.GET("/orders", r.params.OrderHandler.ListOwn)
	customer.PATCH("/orders/:id/cancel", r.params.OrderHandler.Cancel)
	customer.POST("/reviews", r.params.ReviewHandler.Create)

	// Seller endpoints.
	sellerOnly := auth.RequireRole(entity.RoleSeller)
	api.POST("/products", r.params.ProductHandler.Create, auth.Authenticate, sellerOnly)
	api.PUT("/products/:id", r.params.ProductHandler.Update, auth.Authenticate, sellerOnly)
	api.DELETE("/products/:id", r.params.ProductHandler.Delete, auth.Authenticate, sellerOnly)
	api.POST("/products/:id/out-of-stock", r.params.ProductHandler.MarkOutOfStock, auth.Authenticate, sellerOnly)
	api.PUT("/sellers/profile", r.params.SellerHandler.UpdateProfile, auth.Authenticate, sellerOnly)
	api.PATCH("/orders/:id/status", r.params.OrderHandler.UpdateStatus, auth.Authenticate, sellerOnly)

	seller := api.Group("/seller", auth.Authenticate, sellerOnly)
	seller.GET("/products", r.params.ProductHandler.ListOwn)
	seller.GET("/orders", r.params.OrderHandler.ListForSeller)
	seller.GET("/dashboard", r.params.SellerHandler.Dashboard)

	// Admin endpoints.
	admin := api.Group("/admin", auth.Authenticate, auth.RequireRole(entity.RoleAdmin))
	admin.POST("/sellers", r.params.AdminHandler.CreateSeller)
	admin.GET("/sellers/:id/products", r.params.AdminHandler.SellerProducts)
	admin.DELETE("/sellers/:id", r.params.AdminHandler.DeleteSeller)
	admin.DELETE("/products/:id", r.params.AdminHandler.DeleteProduct)
	admin.GET("/stats", r.params.AdminHandler.Stats)
	admin.GET("/reviews", r.params.AdminHandler.RecentReviews)
}
