// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"shophub/internal/delivery/http/middleware"
	"shophub/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	ProfileHandler  *handler.ProfileHandler
	AddressHandler  *handler.AddressHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	OrderHandler    *handler.OrderHandler
	PaymentHandler  *handler.PaymentHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/request-code", r.params.AuthHandler.RequestCode)
		authGroup.POST("/verify", r.params.AuthHandler.VerifyCode)
	}

	// Profile routes that require authentication
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		profileGroup.GET("", r.params.ProfileHandler.GetProfile)
		profileGroup.PUT("", r.params.ProfileHandler.UpdateProfile)
		profileGroup.GET("/payments", r.params.ProfileHandler.GetPaymentHistory)
	}

	// Address book
	addressGroup := e.Group("/addresses")
	addressGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		addressGroup.GET("", r.params.AddressHandler.ListAddresses)
		addressGroup.POST("", r.params.AddressHandler.AddAddress)
		addressGroup.PUT("/:id", r.params.AddressHandler.UpdateAddress)
		addressGroup.DELETE("/:id", r.params.AddressHandler.DeleteAddress)
		addressGroup.PUT("/:id/default", r.params.AddressHandler.SetDefaultAddress)
	}

	// Cart
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		cartGroup.GET("", r.params.CartHandler.GetCart)
		cartGroup.PUT("", r.params.CartHandler.SaveCart)
		cartGroup.DELETE("", r.params.CartHandler.ClearCart)
	}

	// Checkout flow
	checkoutGroup := e.Group("/checkout")
	checkoutGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		checkoutGroup.POST("", r.params.CheckoutHandler.StartCheckout)
		checkoutGroup.GET("/:id", r.params.CheckoutHandler.GetSession)
		checkoutGroup.PUT("/:id/address", r.params.CheckoutHandler.SelectAddress)
		checkoutGroup.PUT("/:id/method", r.params.CheckoutHandler.SelectPaymentMethod)
		checkoutGroup.POST("/:id/next", r.params.CheckoutHandler.NextStep)
		checkoutGroup.POST("/:id/back", r.params.CheckoutHandler.PreviousStep)
		checkoutGroup.POST("/:id/place", r.params.CheckoutHandler.PlaceOrder)
		checkoutGroup.DELETE("/:id", r.params.CheckoutHandler.CancelSession)
	}

	// Order ledger
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		orderGroup.GET("", r.params.OrderHandler.ListOrders)
		orderGroup.GET("/:id", r.params.OrderHandler.GetOrder)
		orderGroup.GET("/:id/tracking", r.params.OrderHandler.TrackOrder)
		orderGroup.POST("/:id/cancel", r.params.OrderHandler.CancelOrder)
		orderGroup.POST("/:id/refund", r.params.PaymentHandler.RefundPayment)
	}

	// Carrier status callbacks are not tied to a user session
	e.PUT("/orders/:id/status", r.params.OrderHandler.UpdateStatus)

	// Payments
	paymentGroup := e.Group("/payments")
	{
		paymentGroup.GET("/methods", r.params.PaymentHandler.ListMethods)
		paymentGroup.POST("/validate-card", r.params.PaymentHandler.ValidateCard)

		paymentGroup.GET("/audit", r.params.PaymentHandler.GetAuditLog, r.params.AuthMiddleware.Authenticate)
		paymentGroup.GET("/analytics", r.params.PaymentHandler.GetAnalytics, r.params.AuthMiddleware.Authenticate)
	}
}
