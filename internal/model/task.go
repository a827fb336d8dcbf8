package model

import "time"

// Task is a finished unit of timed work. Timestamp and Duration are epoch
// milliseconds and seconds.
type Task struct {
	ID          int64
	UserID      string
	Name        string
	Category    string
	Cost        float64
	Timestamp   int64
	Duration    int64
	ValueEarned float64
	CreatedAt   time.Time
}

type IncomeEntry struct {
	ID        int64
	UserID    string
	Amount    float64
	Note      *string
	Timestamp int64
	CreatedAt time.Time
}

// OpenLoop is a parked task with its own timer and rate.
type OpenLoop struct {
	ID             int64
	UserID         string
	Name           string
	Timer          int64
	Rate           float64
	IsActive       bool
	TimerStartTime *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
