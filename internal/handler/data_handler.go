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

type DataHandler struct {
	service service.SettingsService
	now     func() time.Time
}

type userDataResponse struct {
	UserID               string   `json:"userId"`
	HourlyRate           float64  `json:"hourlyRate"`
	CurrentTask          string   `json:"currentTask"`
	Category             string   `json:"category"`
	Timer                int64    `json:"timer"`
	TimerStartTime       *string  `json:"timerStartTime"`
	ShowMinerals         bool     `json:"showMinerals"`
	TaskHistoryMinimized bool     `json:"taskHistoryMinimized"`
	OpenLoopsMinimized   bool     `json:"openLoopsMinimized"`
	LoginStreak          int      `json:"loginStreak"`
	LastLoginDate        *string  `json:"lastLoginDate"`
	GoalTarget           *float64 `json:"goalTarget"`
	GoalMotivation       *string  `json:"goalMotivation"`
	GoalCreatedAt        *string  `json:"goalCreatedAt"`
	CreatedAt            string   `json:"createdAt,omitempty"`
	UpdatedAt            string   `json:"updatedAt,omitempty"`
}

func NewDataHandler(service service.SettingsService) *DataHandler {
	return &DataHandler{service: service, now: time.Now}
}

func (h *DataHandler) RegisterRoutes(g *echo.Group, limit RouteLimiter) {
	g.GET("/data", h.Get, limit.PerUser(ratelimit.Authenticated))
	g.POST("/data", h.Save, limit.PerUser(ratelimit.Authenticated))
}

// Get godoc
// @Summary Load settings, creating defaults and advancing the login streak
// @Tags data
// @Produce json
// @Success 200 {object} userDataResponse
// @Router /data [get]
func (h *DataHandler) Get(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	data, err := h.service.Load(c.Request().Context(), id.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toUserDataResponse(*data))
}

// Save godoc
// @Summary Partially update settings
// @Tags data
// @Accept json
// @Produce json
// @Success 200 {object} userDataResponse
// @Failure 400 {object} errorResponse
// @Router /data [post]
func (h *DataHandler) Save(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	body, err := decodePayload(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	patch, err := h.parsePatch(body)
	if err != nil {
		return writeServiceError(c, err)
	}
	data, err := h.service.Update(c.Request().Context(), id.ID, patch)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toUserDataResponse(*data))
}

// parsePatch validates only the fields that were sent, in a fixed order, and
// stops at the first failure.
func (h *DataHandler) parsePatch(body payload) (service.SettingsPatch, error) {
	var patch service.SettingsPatch
	now := h.now()

	if body.has("hourlyRate") {
		rate, err := validate.HourlyRate(body["hourlyRate"])
		if err != nil {
			return patch, err
		}
		patch.HourlyRate = &rate
	}
	if body.has("currentTask") {
		text, err := validate.CurrentTask(body["currentTask"])
		if err != nil {
			return patch, err
		}
		current := ""
		if text != nil {
			current = *text
		}
		patch.CurrentTask = &current
	}
	if body.has("category") {
		category, err := validate.Category(body["category"])
		if err != nil {
			return patch, err
		}
		patch.Category = &category
	}
	if body.has("timer") {
		timer, err := validate.DurationField("timer", "Timer", body["timer"])
		if err != nil {
			return patch, err
		}
		patch.Timer = &timer
	}
	if body.has("timerStartTime") {
		v, err := optionalTimestamp("timerStartTime", "Timer start time", body["timerStartTime"], now)
		if err != nil {
			return patch, err
		}
		patch.TimerStartTime = v
	}
	for _, f := range []struct {
		key string
		dst **bool
	}{
		{"showMinerals", &patch.ShowMinerals},
		{"taskHistoryMinimized", &patch.TaskHistoryMinimized},
		{"openLoopsMinimized", &patch.OpenLoopsMinimized},
	} {
		if !body.has(f.key) {
			continue
		}
		b, err := validate.Bool(body[f.key], f.key)
		if err != nil {
			return patch, err
		}
		*f.dst = &b
	}
	if body.has("goalTarget") {
		if body["goalTarget"] == nil {
			patch.GoalTarget = service.Clear[float64]()
		} else {
			target, err := validate.MoneyField("goalTarget", "Goal target", body["goalTarget"])
			if err != nil {
				return patch, err
			}
			patch.GoalTarget = service.SetTo(target)
		}
	}
	if body.has("goalMotivation") {
		motivation, err := validate.Motivation(body["goalMotivation"])
		if err != nil {
			return patch, err
		}
		patch.GoalMotivation = service.Nullable[string]{Set: true, Value: motivation}
	}
	if body.has("goalCreatedAt") {
		v, err := optionalTimestamp("goalCreatedAt", "Goal created at", body["goalCreatedAt"], now)
		if err != nil {
			return patch, err
		}
		patch.GoalCreatedAt = v
	}
	return patch, nil
}

func optionalTimestamp(field, label string, raw any, now time.Time) (service.Nullable[int64], error) {
	if isFalsy(raw) {
		return service.Clear[int64](), nil
	}
	ts, err := validate.TimestampAt(field, label, raw, now)
	if err != nil {
		return service.Nullable[int64]{}, err
	}
	return service.SetTo(ts), nil
}

func toUserDataResponse(d model.UserData) userDataResponse {
	return userDataResponse{
		UserID:               d.UserID,
		HourlyRate:           d.HourlyRate,
		CurrentTask:          d.CurrentTask,
		Category:             d.Category,
		Timer:                d.Timer,
		TimerStartTime:       int64PtrToString(d.TimerStartTime),
		ShowMinerals:         d.ShowMinerals,
		TaskHistoryMinimized: d.TaskHistoryMinimized,
		OpenLoopsMinimized:   d.OpenLoopsMinimized,
		LoginStreak:          d.LoginStreak,
		LastLoginDate:        d.LastLoginDate,
		GoalTarget:           d.GoalTarget,
		GoalMotivation:       d.GoalMotivation,
		GoalCreatedAt:        int64PtrToString(d.GoalCreatedAt),
		CreatedAt:            formatTime(d.CreatedAt),
		UpdatedAt:            formatTime(d.UpdatedAt),
	}
}
