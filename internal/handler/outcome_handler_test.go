package handler_test

import (
	"net/http"
	"testing"

	"minerals/backend/internal/handler"
	"minerals/backend/internal/model"
	"minerals/backend/internal/service"
	"minerals/backend/internal/service/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOutcomeHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockOutcomeService(ctrl)
	h := handler.NewOutcomeHandler(mockService)
	e := newTestEcho()

	since := int64(1_740_830_400_000)
	target := 1000.0
	mockService.EXPECT().Get(gomock.Any(), "user_1").Return(&service.Outcomes{
		GoalTarget:    &target,
		GoalCreatedAt: &since,
		TotalEarned:   200,
		Hours:         2,
		EffectiveRate: 100,
		TopTask:       &model.Task{ID: 7, ValueEarned: 150, Timestamp: since},
		DaysSinceGoal: 3,
		Progress:      0.2,
		Daily:         []service.DailyOutcome{{Date: "2025-03-01", Earned: 200, Hours: 2, Tasks: 2}},
	}, nil)

	c, rec := newAuthedContext(e, newJSONRequest(http.MethodGet, "/api/outcomes", nil))
	require.NoError(t, h.Get(c))

	var resp handler.OutcomesResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "1740830400000", *resp.GoalCreatedAt)
	require.Equal(t, "7", resp.TopTask.ID)
	require.Len(t, resp.Daily, 1)
	require.Equal(t, "2025-03-01", resp.Daily[0].Date)
}

func TestOutcomeHandler_ProRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockOutcomeService(ctrl)
	h := handler.NewOutcomeHandler(mockService)
	mockService.EXPECT().Get(gomock.Any(), "user_1").Return(nil, service.ErrProRequired)

	e := newTestEcho()
	c, rec := newAuthedContext(e, newJSONRequest(http.MethodGet, "/api/outcomes", nil))
	require.NoError(t, h.Get(c))

	var resp map[string]string
	assertJSONResponse(t, rec, http.StatusForbidden, &resp)
	require.Equal(t, "Pro subscription required", resp["error"])
}

func TestOutcomeHandler_EmptyDailyIsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockOutcomeService(ctrl)
	h := handler.NewOutcomeHandler(mockService)
	mockService.EXPECT().Get(gomock.Any(), "user_1").Return(&service.Outcomes{}, nil)

	e := newTestEcho()
	c, rec := newAuthedContext(e, newJSONRequest(http.MethodGet, "/api/outcomes", nil))
	require.NoError(t, h.Get(c))
	require.Contains(t, rec.Body.String(), `"daily":[]`)
	require.Contains(t, rec.Body.String(), `"topTask":null`)
}
