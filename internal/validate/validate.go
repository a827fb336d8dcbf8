// Package validate checks and normalizes single fields of untrusted request
// payloads. Inputs are whatever encoding/json produced with UseNumber
// (json.Number, string, bool, nil) or a plain Go value. Every function returns
// either the normalized value or a *Error; none of them panic.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxHourlyRate  = 1_000_000
	MaxMoneyAmount = 10_000_000

	MaxTaskNameLength    = 500
	MaxMotivationLength  = 200
	MaxNoteLength        = 500
	MaxCurrentTaskLength = 500

	// FutureSkew is how far ahead of the server clock a client timestamp may be.
	FutureSkew = 24 * time.Hour

	DefaultTaskName = "Untitled"
)

// Categories is the fixed task-importance enumeration.
var Categories = []string{"rock", "pebble", "sand"}

// Error describes the first problem found with a field. Message is safe to
// return to the caller.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func fail(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// HourlyRate requires a finite number in (0, 1,000,000].
func HourlyRate(raw any) (float64, error) {
	const field = "hourlyRate"
	if raw == nil {
		return 0, fail(field, "Hourly rate is required")
	}
	num, ok := toFloat(raw)
	if !ok || !isFinite(num) {
		return 0, fail(field, "Hourly rate must be a valid number")
	}
	if num <= 0 {
		return 0, fail(field, "Hourly rate must be greater than 0")
	}
	if num > MaxHourlyRate {
		return 0, fail(field, "Hourly rate must be 1,000,000 or less")
	}
	return num, nil
}

// MoneyAmount requires a finite number in [0, 10,000,000] and rounds it to cents.
func MoneyAmount(raw any) (float64, error) {
	return moneyField("amount", "Amount", raw)
}

// IncomeAmount is MoneyAmount that also rejects zero, including values that
// round to zero cents.
func IncomeAmount(raw any) (float64, error) {
	return PositiveMoneyField("amount", "Amount", raw)
}

// PositiveMoneyField is MoneyField that also rejects amounts rounding to 0.
func PositiveMoneyField(field, label string, raw any) (float64, error) {
	amount, err := moneyField(field, label, raw)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fail(field, "%s must be greater than 0", label)
	}
	return amount, nil
}

// MoneyField is MoneyAmount with a caller-chosen field label, used for cost,
// goal target and value earned.
func MoneyField(field, label string, raw any) (float64, error) {
	return moneyField(field, label, raw)
}

func moneyField(field, label string, raw any) (float64, error) {
	if raw == nil {
		return 0, fail(field, "%s is required", label)
	}
	num, ok := toFloat(raw)
	if !ok || !isFinite(num) {
		return 0, fail(field, "%s must be a valid number", label)
	}
	if num < 0 {
		return 0, fail(field, "%s must be positive", label)
	}
	if num > MaxMoneyAmount {
		return 0, fail(field, "%s must be 10,000,000 or less", label)
	}
	return roundCents(num), nil
}

// Duration is a non-negative number of seconds, floored. Absent means 0.
func Duration(raw any) (int64, error) {
	return durationField("duration", "Duration", raw)
}

// DurationField is Duration with a caller-chosen field label (timers).
func DurationField(field, label string, raw any) (int64, error) {
	return durationField(field, label, raw)
}

func durationField(field, label string, raw any) (int64, error) {
	if raw == nil {
		return 0, nil
	}
	if n, ok := toInt(raw); ok {
		if n < 0 {
			return 0, fail(field, "%s must be non-negative", label)
		}
		return n, nil
	}
	num, ok := toFloat(raw)
	if !ok || !isFinite(num) {
		return 0, fail(field, "%s must be a valid number", label)
	}
	if num < 0 {
		return 0, fail(field, "%s must be non-negative", label)
	}
	floored := math.Floor(num)
	if floored >= math.MaxInt64 {
		return 0, fail(field, "%s is too large", label)
	}
	return int64(floored), nil
}

// Timestamp validates epoch milliseconds against the current wall clock.
func Timestamp(raw any) (int64, error) {
	return TimestampAt("timestamp", "Timestamp", raw, time.Now())
}

// TimestampAt validates epoch milliseconds: present, non-negative and no more
// than FutureSkew ahead of now. Integers are kept exact; fractional values are
// floored.
func TimestampAt(field, label string, raw any, now time.Time) (int64, error) {
	if raw == nil {
		return 0, fail(field, "%s is required", label)
	}
	ms, ok := toInt(raw)
	if !ok {
		num, okf := toFloat(raw)
		if !okf || !isFinite(num) {
			return 0, fail(field, "%s must be a valid number", label)
		}
		if num < 0 {
			return 0, fail(field, "%s must be positive", label)
		}
		if num >= math.MaxInt64 {
			return 0, fail(field, "%s cannot be more than 1 day in the future", label)
		}
		ms = int64(math.Floor(num))
	}
	if ms < 0 {
		return 0, fail(field, "%s must be positive", label)
	}
	if ms > now.Add(FutureSkew).UnixMilli() {
		return 0, fail(field, "%s cannot be more than 1 day in the future", label)
	}
	return ms, nil
}

// Category accepts rock, pebble or sand in any case and lowercases it.
func Category(raw any) (string, error) {
	const field = "category"
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", fail(field, "Category is required")
	}
	lower := strings.ToLower(s)
	for _, c := range Categories {
		if lower == c {
			return lower, nil
		}
	}
	return "", fail(field, "Category must be one of: %s", strings.Join(Categories, ", "))
}

// TaskName trims the name; blank or absent becomes DefaultTaskName.
func TaskName(raw any) (string, error) {
	const field = "name"
	if raw == nil {
		return DefaultTaskName, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fail(field, "Task name must be a string")
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return DefaultTaskName, nil
	}
	if utf8.RuneCountInString(trimmed) > MaxTaskNameLength {
		return "", fail(field, "Task name must be %d characters or less", MaxTaskNameLength)
	}
	return trimmed, nil
}

// Text trims free-form text. Absent, empty and blank input normalize to nil.
func Text(raw any, maxLength int, field, label string, required bool) (*string, error) {
	if raw == nil {
		if required {
			return nil, fail(field, "%s is required", label)
		}
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fail(field, "%s must be a string", label)
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		if required {
			return nil, fail(field, "%s is required", label)
		}
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxLength {
		return nil, fail(field, "%s must be %d characters or less", label, maxLength)
	}
	return &trimmed, nil
}

func Motivation(raw any) (*string, error) {
	return Text(raw, MaxMotivationLength, "goalMotivation", "Motivation", false)
}

func Note(raw any) (*string, error) {
	return Text(raw, MaxNoteLength, "note", "Note", false)
}

func CurrentTask(raw any) (*string, error) {
	return Text(raw, MaxCurrentTaskLength, "currentTask", "Current task", false)
}

// Bool requires an actual JSON boolean; "true" or 1 are rejected.
func Bool(raw any, field string) (bool, error) {
	b, ok := raw.(bool)
	if !ok {
		return false, fail(field, "%s must be a boolean", field)
	}
	return b, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(v), 64)
		return f, err == nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// toInt succeeds only for values that are exactly representable as int64
// without going through float64.
func toInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		n, err := strconv.ParseInt(string(v), 10, 64)
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case *big.Int:
		if v == nil || !v.IsInt64() {
			return 0, false
		}
		return v.Int64(), true
	default:
		return 0, false
	}
}

var (
	hundred = big.NewInt(100)
	half    = big.NewRat(1, 2)
)

// roundCents rounds half-up on the decimal value the float prints as, so
// 1.005 becomes 1.01 rather than 1.00.
func roundCents(v float64) float64 {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return math.Round(v*100) / 100
	}
	r.Mul(r, new(big.Rat).SetInt(hundred))
	r.Add(r, half)
	cents := new(big.Int).Quo(r.Num(), r.Denom())
	out, _ := new(big.Rat).SetFrac(cents, hundred).Float64()
	return out
}
