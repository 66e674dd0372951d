package dto

import (
	"github.com/shopspring/decimal"
	"storefront-api/internal/model"
)

// Every response wraps vendor and local results in the same envelope:
// callers branch on Success before trusting payload fields.

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type IntentItem struct {
	ProductID string `json:"productId"`
	Quantity  int32  `json:"quantity"`
}

type CreateIntentRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
	Items    []*IntentItem     `json:"items"`
}

type CreateIntentResponse struct {
	Success         bool   `json:"success"`
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type PaymentDetails struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Created  int64  `json:"created"`
}

type PaymentResponse struct {
	Success bool           `json:"success"`
	Payment PaymentDetails `json:"payment"`
}

type PaymentConfigResponse struct {
	Success        bool   `json:"success"`
	PublishableKey string `json:"publishableKey"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}

type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type UploadImageResponse struct {
	Success bool `json:"success"`
	UploadedImage
}

type UploadImagesResponse struct {
	Success bool            `json:"success"`
	Images  []UploadedImage `json:"images"`
}

type ImageResponse struct {
	Success bool          `json:"success"`
	Image   UploadedImage `json:"image"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

type ProductsResponse struct {
	Success  bool             `json:"success"`
	Products []*model.Product `json:"products"`
}

type ProductResponse struct {
	Success bool           `json:"success"`
	Product *model.Product `json:"product"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

type MeResponse struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
}

type NotificationView struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

type NotificationsResponse struct {
	Success       bool               `json:"success"`
	Notifications []NotificationView `json:"notifications"`
}

type CartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int32  `json:"quantity"`
}

type CartItemView struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int32           `json:"quantity"`
}

type CartResponse struct {
	Success bool            `json:"success"`
	Items   []CartItemView  `json:"items"`
	Total   decimal.Decimal `json:"total"`
}

type WishlistResponse struct {
	Success  bool     `json:"success"`
	Products []string `json:"products"`
}

type OrderItemView struct {
	ProductID string `json:"productId"`
	Quantity  int32  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type OrderView struct {
	OrderNumber string          `json:"orderNumber"`
	Status      string          `json:"status"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	Items       []OrderItemView `json:"items"`
	CreatedAt   int64           `json:"createdAt"`
}

type OrdersResponse struct {
	Success bool        `json:"success"`
	Orders  []OrderView `json:"orders"`
}

type OrderResponse struct {
	Success bool      `json:"success"`
	Order   OrderView `json:"order"`
}
