package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"storefront-api/internal/apperror"
	"storefront-api/internal/client"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// minChargeAmount is the processor's minimum chargeable amount in the
// smallest currency unit.
const minChargeAmount = 50

type PaymentService interface {
	CreateIntent(ctx context.Context, userID string, req *dto.CreateIntentRequest) (*dto.CreateIntentResponse, error)
	GetPayment(ctx context.Context, intentID string) (*dto.PaymentDetails, error)
	HandleWebhook(ctx context.Context, body []byte, sigHeader string) error
}

type paymentServiceImpl struct {
	db               *gorm.DB
	stripeClient     client.StripeClient
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	webhookEventRepo repository.WebhookEventRepository
}

func NewPaymentService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	webhookEventRepo repository.WebhookEventRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:               db,
		stripeClient:     stripeClient,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

func (s *paymentServiceImpl) CreateIntent(ctx context.Context, userID string, req *dto.CreateIntentRequest) (*dto.CreateIntentResponse, error) {
	if req.Amount < minChargeAmount {
		return nil, apperror.Validation("amount must be at least %d", minChargeAmount)
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	// resolve the order's line items before any vendor call
	orderItems, err := s.orderItemsFromRequest(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	intent, err := s.stripeClient.CreatePaymentIntent(ctx, req.Amount, currency, req.Metadata)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderNumber := "ord_" + uuid.NewString()

		if err := s.orderRepo.Create(ctx, tx, &model.Order{
			OrderNumber:     orderNumber,
			PaymentIntentID: intent.ID,
			UserID:          userID,
			Status:          model.OrderStatusPending,
			Amount:          intent.Amount,
			Currency:        intent.Currency,
		}); err != nil {
			return err
		}

		for _, item := range orderItems {
			item.OrderNumber = orderNumber
			item.Currency = intent.Currency
		}
		return s.orderRepo.CreateOrderItems(ctx, tx, orderItems)
	})
	if err != nil {
		return nil, fmt.Errorf("store pending order: %w", err)
	}

	return &dto.CreateIntentResponse{
		Success:         true,
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// orderItemsFromRequest snapshots the checkout's cart lines into order item
// rows, pricing each line from the catalog record rather than trusting the
// client. A checkout without line items is allowed; unknown products or
// non-positive quantities are not.
func (s *paymentServiceImpl) orderItemsFromRequest(ctx context.Context, items []*dto.IntentItem) ([]*model.OrderItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	productIDs := make([]string, len(items))
	quantities := make(map[string]int32, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, apperror.Validation("item quantity must be positive")
		}
		productIDs[i] = item.ProductID
		quantities[item.ProductID] = item.Quantity
	}

	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load products for order: %w", err)
	}
	if len(products) != len(items) {
		return nil, apperror.Validation("some products not found")
	}

	orderItems := make([]*model.OrderItem, len(products))
	for i, product := range products {
		orderItems[i] = &model.OrderItem{
			ProductID: product.ID,
			Quantity:  quantities[product.ID],
			UnitPrice: product.Price.Shift(2).IntPart(),
		}
	}

	return orderItems, nil
}

func (s *paymentServiceImpl) GetPayment(ctx context.Context, intentID string) (*dto.PaymentDetails, error) {
	if intentID == "" {
		return nil, apperror.Validation("payment id is required")
	}

	intent, err := s.stripeClient.GetPaymentIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("get payment intent: %w", err)
	}

	return &dto.PaymentDetails{
		ID:       intent.ID,
		Amount:   intent.Amount,
		Currency: intent.Currency,
		Status:   intent.Status,
		Created:  intent.Created,
	}, nil
}

// webhookEvent is the envelope the processor posts; Data.Object carries the
// payment intent the event refers to.
type webhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// HandleWebhook verifies the signature over the exact payload bytes before
// anything else; any verification failure is a ValidationError and no
// dispatch runs. Once verified, dispatch failures are logged but not
// returned: the processor delivers at least once and retries on non-2xx, so
// the event is acknowledged either way. Duplicate deliveries are detected by
// event id and acknowledged without reprocessing.
func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, body []byte, sigHeader string) error {
	if err := s.stripeClient.VerifyWebhookSignature(body, sigHeader); err != nil {
		return apperror.Validation("webhook signature verification failed: %v", err)
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return apperror.Validation("malformed webhook payload")
	}

	if event.ID != "" {
		seen, err := s.webhookEventRepo.Exists(event.ID)
		if err != nil {
			log.Printf("webhook dedup lookup failed for %s: %v", event.ID, err)
		} else if seen {
			log.Printf("webhook event %s already processed, acknowledging", event.ID)
			return nil
		}
	}

	switch event.Type {
	case "payment_intent.succeeded":
		s.handlePaymentSucceeded(ctx, &event)
	case "payment_intent.payment_failed":
		s.handlePaymentFailed(ctx, &event)
	default:
		log.Printf("unhandled webhook event type %s", event.Type)
	}

	if event.ID != "" {
		if err := s.webhookEventRepo.MarkProcessed(event.ID, event.Type); err != nil {
			log.Printf("mark webhook event %s processed: %v", event.ID, err)
		}
	}

	return nil
}

func (s *paymentServiceImpl) handlePaymentSucceeded(ctx context.Context, event *webhookEvent) {
	intentID := event.Data.Object.ID
	if intentID == "" {
		log.Printf("webhook %s missing payment intent id", event.ID)
		return
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.MarkPaidByIntent(ctx, tx, intentID)
		if err != nil {
			return err
		}
		log.Printf("payment succeeded for intent %s, order %s marked paid", intentID, order.OrderNumber)
		return nil
	})
	if err != nil {
		log.Printf("mark order paid for intent %s: %v", intentID, err)
	}
}

func (s *paymentServiceImpl) handlePaymentFailed(ctx context.Context, event *webhookEvent) {
	intentID := event.Data.Object.ID
	if intentID == "" {
		log.Printf("webhook %s missing payment intent id", event.ID)
		return
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.MarkFailedByIntent(ctx, tx, intentID)
	})
	if err != nil {
		log.Printf("mark order failed for intent %s: %v", intentID, err)
		return
	}
	log.Printf("payment failed for intent %s", intentID)
}
