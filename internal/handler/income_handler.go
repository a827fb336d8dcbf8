package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"minerals/backend/internal/model"
	"minerals/backend/internal/ratelimit"
	"minerals/backend/internal/service"
	"minerals/backend/internal/validate"
)

type IncomeHandler struct {
	service service.IncomeService
}

type incomeResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Amount    float64 `json:"amount"`
	Note      *string `json:"note"`
	Timestamp string  `json:"timestamp"`
	CreatedAt string  `json:"createdAt"`
}

func NewIncomeHandler(service service.IncomeService) *IncomeHandler {
	return &IncomeHandler{service: service}
}

func (h *IncomeHandler) RegisterRoutes(g *echo.Group, limit RouteLimiter) {
	g.GET("/income", h.List, limit.PerUser(ratelimit.Authenticated))
	g.POST("/income", h.Create, limit.PerUser(ratelimit.IncomeEntry))
	g.DELETE("/income", h.Delete, limit.PerUser(ratelimit.Authenticated))
}

// List godoc
// @Summary Income entries, newest first
// @Tags income
// @Produce json
// @Success 200 {array} incomeResponse
// @Router /income [get]
func (h *IncomeHandler) List(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	entries, err := h.service.List(c.Request().Context(), id.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]incomeResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toIncomeResponse(entry))
	}
	return c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary Record manual income
// @Tags income
// @Accept json
// @Produce json
// @Success 200 {object} incomeResponse
// @Failure 400 {object} errorResponse
// @Failure 429 {object} errorResponse
// @Router /income [post]
func (h *IncomeHandler) Create(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	body, err := decodePayload(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	amount, err := validate.IncomeAmount(body["amount"])
	if err != nil {
		return writeServiceError(c, err)
	}
	note, err := validate.Note(body["note"])
	if err != nil {
		return writeServiceError(c, err)
	}
	var timestamp *int64
	if body["timestamp"] != nil {
		ts, err := validate.Timestamp(body["timestamp"])
		if err != nil {
			return writeServiceError(c, err)
		}
		timestamp = &ts
	}

	entry, err := h.service.Create(c.Request().Context(), id.ID, amount, note, timestamp)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toIncomeResponse(*entry))
}

// Delete godoc
// @Summary Delete an owned income entry
// @Tags income
// @Param id query string true "Entry ID"
// @Produce json
// @Success 200 {object} successResponse
// @Failure 404 {object} errorResponse
// @Router /income [delete]
func (h *IncomeHandler) Delete(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	entryID, present, err := parseIDQuery(c, "id")
	if !present {
		return Error(c, http.StatusBadRequest, "Entry ID required")
	}
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	if err := h.service.Delete(c.Request().Context(), id.ID, entryID); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func toIncomeResponse(entry model.IncomeEntry) incomeResponse {
	return incomeResponse{
		ID:        idToString(entry.ID),
		UserID:    entry.UserID,
		Amount:    entry.Amount,
		Note:      entry.Note,
		Timestamp: strconv.FormatInt(entry.Timestamp, 10),
		CreatedAt: formatTime(entry.CreatedAt),
	}
}
