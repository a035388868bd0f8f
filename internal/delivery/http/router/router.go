// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"agritrace/internal/delivery/http/middleware"
	"agritrace/internal/delivery/http/router/handler"
	"agritrace/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProductHandler  *handler.ProductHandler
	AuthHandler     *handler.AuthHandler
	QRHandler       *handler.QRHandler
	ExternalHandler *handler.ExternalHandler
	StatusHandler   *handler.StatusHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	productHandler  *handler.ProductHandler
	authHandler     *handler.AuthHandler
	qrHandler       *handler.QRHandler
	externalHandler *handler.ExternalHandler
	statusHandler   *handler.StatusHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		productHandler:  params.ProductHandler,
		authHandler:     params.AuthHandler,
		qrHandler:       params.QRHandler,
		externalHandler: params.ExternalHandler,
		statusHandler:   params.StatusHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.authMiddleware

	e.GET("/health", r.statusHandler.Health)

	api := e.Group("/api")
	api.GET("/status", r.statusHandler.Status)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/demo-credentials", r.authHandler.DemoCredentials)
		authGroup.GET("/profile", r.authHandler.Profile, auth.Authenticate)
		authGroup.PUT("/profile", r.authHandler.UpdateProfile, auth.Authenticate)
		authGroup.PUT("/change-password", r.authHandler.ChangePassword, auth.Authenticate)
		authGroup.POST("/logout", r.authHandler.Logout, auth.Authenticate)
		authGroup.GET("/users", r.authHandler.ListUsers, auth.Authenticate, auth.RequireRole(entity.RoleAdmin))
	}

	productGroup := api.Group("/products")
	{
		productGroup.POST("/register", r.productHandler.Register,
			auth.Authenticate, auth.RequireRole(entity.RoleFarmer))
		productGroup.POST("/:id/transfer", r.productHandler.Transfer,
			auth.Authenticate, auth.RequireRole(entity.RoleFarmer, entity.RoleDistributor, entity.RoleRetailer))
		productGroup.POST("/:id/complete", r.productHandler.Complete,
			auth.Authenticate, auth.RequireRole(entity.RoleConsumer))
		productGroup.GET("", r.productHandler.List, auth.Authenticate)
		// History and finalization stay public: the consumer scanning a QR
		// code has no account.
		productGroup.GET("/:id/history", r.productHandler.History)
		productGroup.POST("/:id/finalize", r.productHandler.Finalize)
	}

	api.GET("/qr-verify/:id", r.productHandler.QRVerify)
	api.GET("/qr/:id", r.qrHandler.Image)
	api.GET("/qr/:id/data", r.qrHandler.Data)

	api.POST("/sms/send", r.externalHandler.SendSMS, auth.Authenticate)

	externalGroup := api.Group("/external", auth.Authenticate)
	{
		externalGroup.POST("/verify-farmer", r.externalHandler.VerifyFarmer)
		externalGroup.POST("/verify-distributor", r.externalHandler.VerifyDistributor)
		externalGroup.POST("/verify-retailer", r.externalHandler.VerifyRetailer)
		externalGroup.GET("/market-prices", r.externalHandler.MarketPrices)
	}

	api.GET("/analytics/dashboard", r.productHandler.Dashboard, auth.Authenticate)
}
