package handler

import "time"

// Export for testing
type ErrorResponse = errorResponse
type SuccessResponse = successResponse
type URLResponse = urlResponse
type AccountResponse = accountResponse
type UserDataResponse = userDataResponse
type TaskResponse = taskResponse
type IncomeResponse = incomeResponse
type LoopResponse = loopResponse
type SubscriptionResponse = subscriptionResponse
type WebhookResponse = webhookResponse
type OutcomesResponse = outcomesResponse

var WriteServiceError = writeServiceError
var Int64PtrToString = int64PtrToString
var IsFalsy = isFalsy
var ParseID = parseID

func SetDataClock(h *DataHandler, now func() time.Time) { h.now = now }
