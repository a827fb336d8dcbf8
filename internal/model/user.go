package model

import "time"

// User is the local account for an identity provider subject.
type User struct {
	ID        string
	Email     string
	Name      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserData holds per-user settings, the running timer and the earnings goal.
type UserData struct {
	UserID               string
	HourlyRate           float64
	CurrentTask          string
	Category             string
	Timer                int64
	TimerStartTime       *int64
	ShowMinerals         bool
	TaskHistoryMinimized bool
	OpenLoopsMinimized   bool
	LoginStreak          int
	LastLoginDate        *string
	GoalTarget           *float64
	GoalMotivation       *string
	GoalCreatedAt        *int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

const (
	DefaultHourlyRate = 90.0
	DefaultCategory   = "rock"
)

// DefaultUserData is the row created the first time a user loads their data.
func DefaultUserData(userID string) UserData {
	return UserData{
		UserID:       userID,
		HourlyRate:   DefaultHourlyRate,
		Category:     DefaultCategory,
		ShowMinerals: true,
		LoginStreak:  1,
	}
}
