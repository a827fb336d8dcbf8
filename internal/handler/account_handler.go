package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"minerals/backend/internal/model"
	"minerals/backend/internal/ratelimit"
	"minerals/backend/internal/service"
)

type AccountHandler struct {
	service service.AccountService
}

type userResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"createdAt"`
}

type accountResponse struct {
	User userResponse      `json:"user"`
	Data *userDataResponse `json:"data"`
}

func NewAccountHandler(service service.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) RegisterRoutes(g *echo.Group, limit RouteLimiter) {
	g.POST("/account", h.Signup, limit.PerUser(ratelimit.Signup))
	g.GET("/account", h.Get, limit.PerUser(ratelimit.Authenticated))
}

// Signup godoc
// @Summary Create the local account
// @Tags account
// @Produce json
// @Success 201 {object} accountResponse
// @Failure 401 {object} errorResponse
// @Failure 429 {object} errorResponse
// @Router /account [post]
func (h *AccountHandler) Signup(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	account, err := h.service.Signup(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// Get godoc
// @Summary Current account
// @Tags account
// @Produce json
// @Success 200 {object} accountResponse
// @Failure 401 {object} errorResponse
// @Router /account [get]
func (h *AccountHandler) Get(c echo.Context) error {
	id, ok := currentIdentity(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}
	account, err := h.service.Get(c.Request().Context(), id.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

func toAccountResponse(account *service.Account) accountResponse {
	resp := accountResponse{User: toUserResponse(account.User)}
	if account.Data != nil {
		data := toUserDataResponse(*account.Data)
		resp.Data = &data
	}
	return resp
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: formatTime(user.CreatedAt),
	}
}
