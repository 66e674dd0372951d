package handler

import (
	"io"
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	publishableKey string
}

func NewPaymentHandler(paymentService service.PaymentService, publishableKey string) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		publishableKey: publishableKey,
	}
}

func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	userID, _ := c.Get("user_id").(string)

	resp, err := h.paymentService.CreateIntent(ctx, userID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	ctx := c.Request().Context()

	payment, err := h.paymentService.GetPayment(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.PaymentResponse{
		Success: true,
		Payment: *payment,
	})
}

func (h *PaymentHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, &dto.PaymentConfigResponse{
		Success:        true,
		PublishableKey: h.publishableKey,
	})
}

// Webhook reads the raw body before any parsing: the signature covers the
// exact bytes on the wire. Verification failures answer 400 with a plain
// text error; once verification passes the event is always acknowledged
// with 200 so the processor stops redelivering.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.String(http.StatusBadRequest, "unreadable body")
	}

	sigHeader := c.Request().Header.Get("Stripe-Signature")
	if err := h.paymentService.HandleWebhook(ctx, body, sigHeader); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, &dto.WebhookAck{Received: true})
}
