package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"minerals/backend/internal/ratelimit"
	"minerals/backend/internal/service"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
}

type subscriptionResponse struct {
	IsPro             bool    `json:"isPro"`
	Status            string  `json:"status"`
	Plan              string  `json:"plan"`
	CurrentPeriodEnd  *string `json:"currentPeriodEnd"`
	CancelAtPeriodEnd bool    `json:"cancelAtPeriodEnd"`
}

func NewSubscriptionHandler(service service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

func (h *SubscriptionHandler) RegisterRoutes(g *echo.Group, limit RouteLimiter) {
	g.GET("/subscription", h.Status, limit.PerUser(ratelimit.Authenticated))
	g.POST("/billing/checkout", h.Checkout, limit.PerUser(ratelimit.Authenticated))
	g.POST("/billing/portal", h.Portal, limit.PerUser(ratelimit.Authenticated))
}

// Status godoc
// @Summary Subscription status of the caller
// @Tags billing
// @Produce json
// @Success 200 {object} subscriptionResponse
// @Router /subscription [get]
func (h *SubscriptionHandler) Status(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	status, err := h.service.Status(c.Request().Context(), id.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, subscriptionResponse{
		IsPro:             status.IsPro,
		Status:            status.Status,
		Plan:              status.Plan,
		CurrentPeriodEnd:  formatTimePtr(status.CurrentPeriodEnd),
		CancelAtPeriodEnd: status.CancelAtPeriodEnd,
	})
}

// Checkout godoc
// @Summary Start a hosted checkout for the pro plan
// @Tags billing
// @Produce json
// @Success 200 {object} urlResponse
// @Failure 400 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /billing/checkout [post]
func (h *SubscriptionHandler) Checkout(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	url, err := h.service.Checkout(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, urlResponse{URL: url})
}

// Portal godoc
// @Summary Open the hosted billing portal
// @Tags billing
// @Produce json
// @Success 200 {object} urlResponse
// @Failure 404 {object} errorResponse
// @Router /billing/portal [post]
func (h *SubscriptionHandler) Portal(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	url, err := h.service.Portal(c.Request().Context(), id.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, urlResponse{URL: url})
}
