package service

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-pos-loyalty/internal/model"
	"go-pos-loyalty/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM (e.g., 08:30, 17:59)")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// validateTimeFormat validates HH:MM format (00:00 - 23:59)
func validateTimeFormat(timeStr string) error {
	if !clockPattern.MatchString(timeStr) {
		return ErrInvalidTimeFormat
	}
	return nil
}

// timeToMinutes converts HH:MM to minutes since midnight
func timeToMinutes(timeStr string) int {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0
	}
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}

// Availability decides whether a store is open at a date (and optionally a
// clock time), consulting date overrides before the weekly schedule.
type Availability struct {
	storeRepo repository.StoreRepository
}

func NewAvailability(storeRepo repository.StoreRepository) *Availability {
	return &Availability{storeRepo: storeRepo}
}

// IsOpenAt answers for one date and an optional HH:MM clock ("" for a
// date-only query).
func (a *Availability) IsOpenAt(storeID uuid.UUID, date time.Time, clock string) (bool, error) {
	if clock != "" {
		if err := validateTimeFormat(clock); err != nil {
			return false, err
		}
	}

	override, err := a.storeRepo.FindSpecialDay(storeID, date)
	if err != nil {
		return false, err
	}
	hour, err := a.storeRepo.FindHour(storeID, date.Weekday())
	if err != nil {
		return false, err
	}
	return evaluateOpen(override, hour, clock), nil
}

// evaluateOpen applies the precedence rules: a date override always wins over
// the weekday entry; an "open" day without configured times cannot confirm
// openness; a timed check must fall strictly between open and close.
func evaluateOpen(override *model.SpecialDay, hour *model.StoreHour, clock string) bool {
	if override != nil {
		if !override.IsOpen {
			return false
		}
		return withinWindow(override.OpenTime, override.CloseTime, clock)
	}
	if hour == nil || !hour.IsOpen {
		return false
	}
	return withinWindow(hour.OpenTime, hour.CloseTime, clock)
}

func withinWindow(open, close, clock string) bool {
	// Without both bounds the day cannot confirm openness, timed or not.
	if open == "" || close == "" {
		return false
	}
	if clock == "" {
		return true
	}
	t := timeToMinutes(clock)
	return timeToMinutes(open) < t && t < timeToMinutes(close)
}
