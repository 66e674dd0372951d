package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/handler"
	authmw "storefront-api/internal/middleware"
	"storefront-api/internal/service"
	"storefront-api/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	authService    service.AuthService
	paymentHandler *handler.PaymentHandler
	uploadHandler  *handler.UploadHandler
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	authHandler    *handler.AuthHandler
}

func NewServer(
	paymentService service.PaymentService,
	mediaService service.MediaService,
	catalogService service.CatalogService,
	orderService service.OrderService,
	authService service.AuthService,
	sessions *store.SessionManager,
	publishableKey string,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.HTTPErrorHandler = errorHandler

	s := &Server{
		echo:           e,
		authService:    authService,
		paymentHandler: handler.NewPaymentHandler(paymentService, publishableKey),
		uploadHandler:  handler.NewUploadHandler(mediaService),
		catalogHandler: handler.NewCatalogHandler(catalogService),
		cartHandler:    handler.NewCartHandler(sessions, catalogService),
		orderHandler:   handler.NewOrderHandler(orderService),
		authHandler:    handler.NewAuthHandler(authService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, &dto.HealthResponse{Success: true, Status: "ok"})
	})

	optionalAuth := authmw.JWTAuth(s.authService, false)
	requiredAuth := authmw.JWTAuth(s.authService, true)

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.GET("/me", s.authHandler.Me, requiredAuth)

	// -------- payments --------
	payments := api.Group("/payments")
	payments.POST("/create-intent", s.paymentHandler.CreateIntent, optionalAuth)
	payments.GET("/payment/:id", s.paymentHandler.GetPayment)
	payments.GET("/config", s.paymentHandler.GetConfig)
	payments.POST("/webhook", s.paymentHandler.Webhook)

	// -------- uploads --------
	uploads := api.Group("/uploads")
	uploads.POST("/image", s.uploadHandler.UploadImage)
	uploads.POST("/images", s.uploadHandler.UploadImages)
	uploads.DELETE("/image/:publicId", s.uploadHandler.DeleteImage)
	uploads.GET("/image/:publicId", s.uploadHandler.GetImage)
	uploads.GET("/health", s.uploadHandler.Health)

	// -------- catalog --------
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:id", s.catalogHandler.GetProduct)

	// -------- cart & wishlist (session-scoped) --------
	cart := api.Group("/cart")
	cart.GET("", s.cartHandler.GetCart)
	cart.DELETE("", s.cartHandler.ClearCart)
	cart.POST("/items", s.cartHandler.AddItem)
	cart.PUT("/items/:productId", s.cartHandler.UpdateItem)
	cart.DELETE("/items/:productId", s.cartHandler.RemoveItem)

	wishlist := api.Group("/wishlist")
	wishlist.GET("", s.cartHandler.GetWishlist)
	wishlist.DELETE("", s.cartHandler.ClearWishlist)
	wishlist.POST("/:productId", s.cartHandler.AddToWishlist)
	wishlist.DELETE("/:productId", s.cartHandler.RemoveFromWishlist)

	// -------- notifications (session-scoped) --------
	notifications := api.Group("/notifications")
	notifications.GET("", s.cartHandler.GetNotifications)
	notifications.DELETE("", s.cartHandler.ClearNotifications)
	notifications.DELETE("/:id", s.cartHandler.DismissNotification)

	// -------- orders --------
	orders := api.Group("/orders", requiredAuth)
	orders.GET("", s.orderHandler.GetOrders)
	orders.GET("/:orderNumber", s.orderHandler.GetOrder)
}

// errorHandler converts every error escaping a handler into the
// {success:false, message} envelope: validation errors answer 400, missing
// records 404, vendor failures 500. Wrapped causes are logged server-side
// and never shown to clients.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var validationErr *apperror.ValidationError
	var notFoundErr *apperror.NotFoundError
	var vendorErr *apperror.VendorError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = validationErr.Message
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
		message = notFoundErr.Message
	case errors.As(err, &vendorErr):
		status = http.StatusInternalServerError
		message = vendorErr.Message
		log.Printf("vendor error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	default:
		log.Printf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if writeErr := c.JSON(status, &dto.ErrorResponse{Success: false, Message: message}); writeErr != nil {
		log.Printf("write error response: %v", writeErr)
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
