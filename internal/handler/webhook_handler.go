package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"minerals/backend/internal/service"
	"minerals/backend/pkg/logger"
)

// maxWebhookBody bounds the raw payload read before signature verification.
const maxWebhookBody = 1 << 20

// WebhookRecorder counts webhook outcomes.
type WebhookRecorder interface {
	IncWebhookEvent(eventType, result string)
}

type WebhookHandler struct {
	service  service.SubscriptionService
	recorder WebhookRecorder
}

type webhookResponse struct {
	Received bool `json:"received"`
}

func NewWebhookHandler(service service.SubscriptionService, recorder WebhookRecorder) *WebhookHandler {
	return &WebhookHandler{service: service, recorder: recorder}
}

func (h *WebhookHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/stripe/webhook", h.Receive)
}

// Receive godoc
// @Summary Stripe webhook endpoint
// @Tags billing
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200 {object} webhookResponse
// @Failure 400 {object} errorResponse
// @Router /stripe/webhook [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	signature := c.Request().Header.Get("Stripe-Signature")
	if signature == "" {
		h.record("", "rejected")
		return Error(c, http.StatusBadRequest, "missing signature")
	}

	result, err := h.service.HandleWebhook(c.Request().Context(), body, signature)
	if err != nil {
		if errors.Is(err, service.ErrInvalid) {
			h.record(result.Type, "rejected")
			logger.Warn("webhook rejected", "module", "handler", "action", "webhook", "resource", "billing_event", "result", "failed", "error", err)
			return Error(c, http.StatusBadRequest, "invalid signature")
		}
		h.record(result.Type, "failed")
		return writeServiceError(c, err)
	}

	switch {
	case result.Duplicate:
		h.record(result.Type, "duplicate")
	case result.Ignored:
		h.record(result.Type, "ignored")
	default:
		h.record(result.Type, "processed")
	}
	logger.Info("webhook received", "module", "handler", "action", "webhook", "resource", "billing_event", "result", "ok",
		"event_id", result.EventID, "type", result.Type, "duplicate", result.Duplicate, "ignored", result.Ignored)
	return c.JSON(http.StatusOK, webhookResponse{Received: true})
}

func (h *WebhookHandler) record(eventType, result string) {
	if h.recorder != nil {
		h.recorder.IncWebhookEvent(eventType, result)
	}
}
