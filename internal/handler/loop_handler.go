package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"minerals/backend/internal/model"
	"minerals/backend/internal/ratelimit"
	"minerals/backend/internal/service"
	"minerals/backend/internal/validate"
)

const maxLoopNameLength = validate.MaxTaskNameLength

type LoopHandler struct {
	service service.LoopService
	now     func() time.Time
}

type loopResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	Name           string  `json:"name"`
	Timer          int64   `json:"timer"`
	Rate           float64 `json:"rate"`
	IsActive       bool    `json:"isActive"`
	TimerStartTime *string `json:"timerStartTime"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func NewLoopHandler(service service.LoopService) *LoopHandler {
	return &LoopHandler{service: service, now: time.Now}
}

func (h *LoopHandler) RegisterRoutes(g *echo.Group, limit RouteLimiter) {
	g.GET("/loops", h.List, limit.PerUser(ratelimit.Authenticated))
	g.POST("/loops", h.Save, limit.PerUser(ratelimit.Authenticated))
	g.DELETE("/loops", h.Delete, limit.PerUser(ratelimit.Authenticated))
}

// List godoc
// @Summary Open loops, newest first
// @Tags loops
// @Produce json
// @Success 200 {array} loopResponse
// @Router /loops [get]
func (h *LoopHandler) List(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	loops, err := h.service.List(c.Request().Context(), id.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]loopResponse, 0, len(loops))
	for _, loop := range loops {
		response = append(response, toLoopResponse(loop))
	}
	return c.JSON(http.StatusOK, response)
}

// Save godoc
// @Summary Create a loop, or update an owned loop when id is set
// @Tags loops
// @Accept json
// @Produce json
// @Success 200 {object} loopResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /loops [post]
func (h *LoopHandler) Save(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	body, err := decodePayload(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	var loopID int64
	if !isFalsy(body["id"]) {
		if loopID, ok = parseID(body["id"]); !ok {
			return Error(c, http.StatusBadRequest, "invalid request")
		}
	}
	input, err := h.parseLoopInput(body)
	if err != nil {
		return writeServiceError(c, err)
	}

	ctx := c.Request().Context()
	var loop *model.OpenLoop
	if loopID != 0 {
		loop, err = h.service.Update(ctx, id.ID, loopID, input)
	} else {
		loop, err = h.service.Create(ctx, id.ID, input)
	}
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toLoopResponse(*loop))
}

func (h *LoopHandler) parseLoopInput(body payload) (service.LoopInput, error) {
	var input service.LoopInput

	if body["name"] != nil {
		name, err := validate.Text(body["name"], maxLoopNameLength, "name", "Loop name", false)
		if err != nil {
			return input, err
		}
		input.Name = name
	}
	if body["timer"] != nil {
		timer, err := validate.DurationField("timer", "Timer", body["timer"])
		if err != nil {
			return input, err
		}
		input.Timer = &timer
	}
	if body["rate"] != nil {
		rate, err := validate.PositiveMoneyField("rate", "Rate", body["rate"])
		if err != nil {
			return input, err
		}
		input.Rate = &rate
	}
	if body["isActive"] != nil {
		active, err := validate.Bool(body["isActive"], "isActive")
		if err != nil {
			return input, err
		}
		input.IsActive = &active
	}
	if body.has("timerStartTime") {
		start, err := optionalTimestamp("timerStartTime", "Timer start time", body["timerStartTime"], h.now())
		if err != nil {
			return input, err
		}
		input.TimerStartTime = start
	}
	return input, nil
}

// Delete godoc
// @Summary Delete an owned loop
// @Tags loops
// @Param id query string true "Loop ID"
// @Produce json
// @Success 200 {object} successResponse
// @Failure 404 {object} errorResponse
// @Router /loops [delete]
func (h *LoopHandler) Delete(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	loopID, present, err := parseIDQuery(c, "id")
	if !present {
		return Error(c, http.StatusBadRequest, "Loop ID required")
	}
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	if err := h.service.Delete(c.Request().Context(), id.ID, loopID); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func toLoopResponse(loop model.OpenLoop) loopResponse {
	return loopResponse{
		ID:             idToString(loop.ID),
		UserID:         loop.UserID,
		Name:           loop.Name,
		Timer:          loop.Timer,
		Rate:           loop.Rate,
		IsActive:       loop.IsActive,
		TimerStartTime: int64PtrToString(loop.TimerStartTime),
		CreatedAt:      formatTime(loop.CreatedAt),
		UpdatedAt:      formatTime(loop.UpdatedAt),
	}
}
