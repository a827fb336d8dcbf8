package apiclient

// Int64 timestamps and record ids travel as decimal strings.

type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"createdAt"`
}

type Account struct {
	User User      `json:"user"`
	Data *UserData `json:"data"`
}

type UserData struct {
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
	CreatedAt            string   `json:"createdAt"`
	UpdatedAt            string   `json:"updatedAt"`
}

// DataPatch is a partial settings update. Keys follow the JSON field names;
// a nil value clears nullable fields.
type DataPatch map[string]any

type Task struct {
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

type NewTask struct {
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Cost        float64 `json:"cost"`
	Duration    int64   `json:"duration"`
	ValueEarned float64 `json:"valueEarned"`
	// Timestamp in epoch milliseconds; zero lets the server use its clock.
	Timestamp int64 `json:"timestamp,omitempty"`
}

type IncomeEntry struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Amount    float64 `json:"amount"`
	Note      *string `json:"note"`
	Timestamp string  `json:"timestamp"`
	CreatedAt string  `json:"createdAt"`
}

type NewIncome struct {
	Amount    float64 `json:"amount"`
	Note      string  `json:"note,omitempty"`
	Timestamp int64   `json:"timestamp,omitempty"`
}

type Loop struct {
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

// LoopInput creates a loop when ID is empty and updates it otherwise.
type LoopInput struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	Timer          int64   `json:"timer"`
	Rate           float64 `json:"rate"`
	IsActive       bool    `json:"isActive"`
	TimerStartTime *int64  `json:"timerStartTime"`
}

type Subscription struct {
	IsPro             bool    `json:"isPro"`
	Status            string  `json:"status"`
	Plan              string  `json:"plan"`
	CurrentPeriodEnd  *string `json:"currentPeriodEnd"`
	CancelAtPeriodEnd bool    `json:"cancelAtPeriodEnd"`
}

type DailyOutcome struct {
	Date   string  `json:"date"`
	Earned float64 `json:"earned"`
	Hours  float64 `json:"hours"`
	Tasks  int     `json:"tasks"`
}

type Outcomes struct {
	GoalTarget     *float64       `json:"goalTarget"`
	GoalMotivation *string        `json:"goalMotivation"`
	GoalCreatedAt  *string        `json:"goalCreatedAt"`
	TotalEarned    float64        `json:"totalEarned"`
	TaskEarned     float64        `json:"taskEarned"`
	IncomeEarned   float64        `json:"incomeEarned"`
	Hours          float64        `json:"hours"`
	EffectiveRate  float64        `json:"effectiveRate"`
	TopTask        *Task          `json:"topTask"`
	DaysSinceGoal  int            `json:"daysSinceGoal"`
	Progress       float64        `json:"progress"`
	Daily          []DailyOutcome `json:"daily"`
}

type urlResponse struct {
	URL string `json:"url"`
}
