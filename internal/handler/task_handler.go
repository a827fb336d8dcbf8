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

type TaskHandler struct {
	service service.TaskService
}

type taskResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Cost        float64 `json:"cost"`
	Timestamp   string  `json:"timestamp"`
	Duration    int64   `json:"duration"`
	ValueEarned float64 `json:"valueEarned"`
	CreatedAt   string  `json:"createdAt"`
}

func NewTaskHandler(service service.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) RegisterRoutes(g *echo.Group, limit RouteLimiter) {
	g.GET("/tasks", h.List, limit.PerUser(ratelimit.Authenticated))
	g.POST("/tasks", h.Create, limit.PerUser(ratelimit.TaskCreate))
	g.PATCH("/tasks", h.UpdateValue, limit.PerUser(ratelimit.Authenticated))
	g.DELETE("/tasks", h.Delete, limit.PerUser(ratelimit.Authenticated))
}

// List godoc
// @Summary Task history, newest first
// @Tags tasks
// @Produce json
// @Success 200 {array} taskResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	tasks, err := h.service.List(c.Request().Context(), id.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, toTaskResponse(task))
	}
	return c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary Finish a task
// @Tags tasks
// @Accept json
// @Produce json
// @Success 200 {object} taskResponse
// @Failure 400 {object} errorResponse
// @Failure 429 {object} errorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	body, err := decodePayload(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	input, err := parseTaskInput(body)
	if err != nil {
		return writeServiceError(c, err)
	}
	task, err := h.service.Create(c.Request().Context(), id.ID, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTaskResponse(*task))
}

func parseTaskInput(body payload) (service.TaskInput, error) {
	var input service.TaskInput

	name, err := validate.TaskName(body["name"])
	if err != nil {
		return input, err
	}
	input.Name = name

	input.Category = model.DefaultCategory
	if body["category"] != nil {
		if input.Category, err = validate.Category(body["category"]); err != nil {
			return input, err
		}
	}
	if body["cost"] != nil {
		if input.Cost, err = validate.MoneyField("cost", "Cost", body["cost"]); err != nil {
			return input, err
		}
	}
	if input.Duration, err = validate.Duration(body["duration"]); err != nil {
		return input, err
	}
	if body["valueEarned"] != nil {
		if input.ValueEarned, err = validate.MoneyField("valueEarned", "Value earned", body["valueEarned"]); err != nil {
			return input, err
		}
	}
	if body["timestamp"] != nil {
		ts, err := validate.Timestamp(body["timestamp"])
		if err != nil {
			return input, err
		}
		input.Timestamp = &ts
	}
	return input, nil
}

// UpdateValue godoc
// @Summary Change the value earned by an owned task
// @Tags tasks
// @Accept json
// @Produce json
// @Success 200 {object} taskResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /tasks [patch]
func (h *TaskHandler) UpdateValue(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	body, err := decodePayload(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	if isFalsy(body["taskId"]) {
		return Error(c, http.StatusBadRequest, "Task ID required")
	}
	taskID, ok := parseID(body["taskId"])
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	var value float64
	if body["valueEarned"] != nil {
		if value, err = validate.MoneyField("valueEarned", "Value earned", body["valueEarned"]); err != nil {
			return writeServiceError(c, err)
		}
	}

	task, err := h.service.UpdateValueEarned(c.Request().Context(), id.ID, taskID, value)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTaskResponse(*task))
}

// Delete godoc
// @Summary Delete an owned task
// @Tags tasks
// @Param id query string true "Task ID"
// @Produce json
// @Success 200 {object} successResponse
// @Failure 404 {object} errorResponse
// @Router /tasks [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	taskID, present, err := parseIDQuery(c, "id")
	if !present {
		return Error(c, http.StatusBadRequest, "Task ID required")
	}
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	if err := h.service.Delete(c.Request().Context(), id.ID, taskID); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func toTaskResponse(task model.Task) taskResponse {
	return taskResponse{
		ID:          idToString(task.ID),
		UserID:      task.UserID,
		Name:        task.Name,
		Category:    task.Category,
		Cost:        task.Cost,
		Timestamp:   strconv.FormatInt(task.Timestamp, 10),
		Duration:    task.Duration,
		ValueEarned: task.ValueEarned,
		CreatedAt:   formatTime(task.CreatedAt),
	}
}
