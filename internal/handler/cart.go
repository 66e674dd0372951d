package handler

import (
	"net/http"
	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/service"
	"storefront-api/internal/store"
	"time"

	"github.com/labstack/echo/v4"
)

const sessionCookie = "storefront_session"

// toastDuration is how long a queued message lives before it self-destructs.
const toastDuration = 5 * time.Second

type CartHandler struct {
	sessions       *store.SessionManager
	catalogService service.CatalogService
}

func NewCartHandler(sessions *store.SessionManager, catalogService service.CatalogService) *CartHandler {
	return &CartHandler{
		sessions:       sessions,
		catalogService: catalogService,
	}
}

// session resolves the visitor's session from the cookie, minting one (and
// setting the cookie) on first contact.
func (h *CartHandler) session(c echo.Context) *store.Session {
	var id string
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		id = cookie.Value
	}

	s := h.sessions.GetOrCreate(id)
	if s.ID != id {
		c.SetCookie(&http.Cookie{
			Name:     sessionCookie,
			Value:    s.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s
}

func (h *CartHandler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, cartResponse(h.session(c).Cart))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if req.ProductID == "" {
		return apperror.Validation("productId is required")
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return apperror.Validation("quantity must be positive")
	}

	product, err := h.catalogService.GetProduct(ctx, req.ProductID)
	if err != nil {
		return err
	}

	session := h.session(c)
	session.Cart.Add(product, quantity)
	session.Notifications.Show(product.Name+" added to cart", "success", toastDuration)

	return c.JSON(http.StatusOK, cartResponse(session.Cart))
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req struct {
		Quantity int32 `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	session := h.session(c)
	session.Cart.SetQuantity(c.Param("productId"), req.Quantity)

	return c.JSON(http.StatusOK, cartResponse(session.Cart))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	session := h.session(c)
	session.Cart.Remove(c.Param("productId"))
	session.Notifications.Show("Item removed from cart", "info", toastDuration)
	return c.JSON(http.StatusOK, cartResponse(session.Cart))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	session := h.session(c)
	session.Cart.Clear()
	session.Notifications.Show("Cart cleared", "info", toastDuration)
	return c.JSON(http.StatusOK, cartResponse(session.Cart))
}

func (h *CartHandler) GetWishlist(c echo.Context) error {
	return c.JSON(http.StatusOK, wishlistResponse(h.session(c).Wishlist))
}

func (h *CartHandler) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()

	productID := c.Param("productId")
	if _, err := h.catalogService.GetProduct(ctx, productID); err != nil {
		return err
	}

	session := h.session(c)
	session.Wishlist.Add(productID)
	session.Notifications.Show("Added to wishlist", "success", toastDuration)

	return c.JSON(http.StatusOK, wishlistResponse(session.Wishlist))
}

func (h *CartHandler) RemoveFromWishlist(c echo.Context) error {
	session := h.session(c)
	session.Wishlist.Remove(c.Param("productId"))
	return c.JSON(http.StatusOK, wishlistResponse(session.Wishlist))
}

func (h *CartHandler) ClearWishlist(c echo.Context) error {
	session := h.session(c)
	session.Wishlist.Clear()
	return c.JSON(http.StatusOK, wishlistResponse(session.Wishlist))
}

func (h *CartHandler) GetNotifications(c echo.Context) error {
	list := h.session(c).Notifications.List()

	views := make([]dto.NotificationView, 0, len(list))
	for _, n := range list {
		views = append(views, dto.NotificationView{ID: n.ID, Message: n.Message, Kind: n.Kind})
	}

	return c.JSON(http.StatusOK, &dto.NotificationsResponse{
		Success:       true,
		Notifications: views,
	})
}

// DismissNotification is idempotent: dismissing an id that already expired
// or never existed still answers 200.
func (h *CartHandler) DismissNotification(c echo.Context) error {
	h.session(c).Notifications.Remove(c.Param("id"))
	return c.JSON(http.StatusOK, &dto.MessageResponse{
		Success: true,
		Message: "notification dismissed",
	})
}

func (h *CartHandler) ClearNotifications(c echo.Context) error {
	h.session(c).Notifications.Clear()
	return c.JSON(http.StatusOK, &dto.MessageResponse{
		Success: true,
		Message: "notifications cleared",
	})
}

func cartResponse(cart *store.Cart) *dto.CartResponse {
	items := cart.Items()
	views := make([]dto.CartItemView, 0, len(items))
	for _, item := range items {
		views = append(views, dto.CartItemView{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
		})
	}

	return &dto.CartResponse{
		Success: true,
		Items:   views,
		Total:   cart.Total(),
	}
}

func wishlistResponse(wishlist *store.Wishlist) *dto.WishlistResponse {
	return &dto.WishlistResponse{
		Success:  true,
		Products: wishlist.Products(),
	}
}
