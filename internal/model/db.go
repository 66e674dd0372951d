package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	Name         string `gorm:"size:128;not null"`
	Email        string `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Product struct {
	ID          string          `gorm:"primaryKey;size:64;not null" json:"id"`
	Name        string          `gorm:"size:128;not null" json:"name"`
	Description string          `gorm:"size:1024" json:"description"`
	Category    string          `gorm:"size:64;index;not null" json:"category"`
	Material    string          `gorm:"size:64;index" json:"material"`
	Price       decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Currency    string          `gorm:"size:8;not null" json:"currency"`
	ImageURL    string          `gorm:"size:512" json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Order struct {
	OrderNumber string `gorm:"primaryKey;size:64;not null"`
	// stripe payment intent id, set when the intent is created
	PaymentIntentID string `gorm:"size:64;uniqueIndex;not null"`
	UserID          string `gorm:"size:64;index"`
	Status          string `gorm:"size:32;index;not null"` // PENDING, PAID, FAILED
	Amount          int64  `gorm:"not null"`               // smallest currency unit
	Currency        string `gorm:"size:8;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → order.order_number
	OrderNumber string `gorm:"size:64;index;not null"`
	// FK → product.id
	ProductID string `gorm:"index;not null"`
	Quantity  int32  `gorm:"not null"`
	UnitPrice int64  `gorm:"not null"`
	Currency  string `gorm:"size:8;not null"`

	CreatedAt time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;uniqueIndex;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}

const (
	OrderStatusPending = "PENDING"
	OrderStatusPaid    = "PAID"
	OrderStatusFailed  = "FAILED"
)
