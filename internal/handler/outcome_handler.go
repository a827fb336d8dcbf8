package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"minerals/backend/internal/ratelimit"
	"minerals/backend/internal/service"
)

type OutcomeHandler struct {
	service service.OutcomeService
}

type dailyOutcomeResponse struct {
	Date   string  `json:"date"`
	Earned float64 `json:"earned"`
	Hours  float64 `json:"hours"`
	Tasks  int     `json:"tasks"`
}

type outcomesResponse struct {
	GoalTarget     *float64               `json:"goalTarget"`
	GoalMotivation *string                `json:"goalMotivation"`
	GoalCreatedAt  *string                `json:"goalCreatedAt"`
	TotalEarned    float64                `json:"totalEarned"`
	TaskEarned     float64                `json:"taskEarned"`
	IncomeEarned   float64                `json:"incomeEarned"`
	Hours          float64                `json:"hours"`
	EffectiveRate  float64                `json:"effectiveRate"`
	TopTask        *taskResponse          `json:"topTask"`
	DaysSinceGoal  int                    `json:"daysSinceGoal"`
	Progress       float64                `json:"progress"`
	Daily          []dailyOutcomeResponse `json:"daily"`
}

func NewOutcomeHandler(service service.OutcomeService) *OutcomeHandler {
	return &OutcomeHandler{service: service}
}

func (h *OutcomeHandler) RegisterRoutes(g *echo.Group, limit RouteLimiter) {
	g.GET("/outcomes", h.Get, limit.PerUser(ratelimit.Authenticated))
}

// Get godoc
// @Summary Earnings since the goal was set (pro only)
// @Tags outcomes
// @Produce json
// @Success 200 {object} outcomesResponse
// @Failure 403 {object} errorResponse
// @Router /outcomes [get]
func (h *OutcomeHandler) Get(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	out, err := h.service.Get(c.Request().Context(), id.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toOutcomesResponse(out))
}

func toOutcomesResponse(out *service.Outcomes) outcomesResponse {
	resp := outcomesResponse{
		GoalTarget:     out.GoalTarget,
		GoalMotivation: out.GoalMotivation,
		GoalCreatedAt:  int64PtrToString(out.GoalCreatedAt),
		TotalEarned:    out.TotalEarned,
		TaskEarned:     out.TaskEarned,
		IncomeEarned:   out.IncomeEarned,
		Hours:          out.Hours,
		EffectiveRate:  out.EffectiveRate,
		DaysSinceGoal:  out.DaysSinceGoal,
		Progress:       out.Progress,
		Daily:          make([]dailyOutcomeResponse, 0, len(out.Daily)),
	}
	if out.TopTask != nil {
		top := toTaskResponse(*out.TopTask)
		resp.TopTask = &top
	}
	for _, d := range out.Daily {
		resp.Daily = append(resp.Daily, dailyOutcomeResponse(d))
	}
	return resp
}
