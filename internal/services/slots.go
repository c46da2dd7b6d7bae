package services

import (
	"fmt"
	"time"

	"github.com/joshua-takyi/futsalhub/internal/models"
)

// Slot is a one-hour bookable window with a price. Times are facility-local
// "HH:MM" strings, half-open [StartTime, StartTime+1h).
type Slot struct {
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	IsAvailable bool    `json:"isAvailable"`
	Price       float64 `json:"price"`
}

const clockLayout = "15:04"

// ComputeSlots derives the ordered hourly slot sequence for a facility on a
// calendar day, given "now". Recomputed fresh per call, no caching. The
// returned day is the calendar day the slots belong to, which differs from
// the requested date only in the closing-soon rollover case.
//
// Policy:
//   - date beyond today: every hourly slot from opening to closing.
//   - date is today and the current hour has reached closingHour-1: the
//     facility is closing soon, so the full sequence for the next calendar
//     day is returned instead of an empty list.
//   - date is today otherwise: the first slot starts at the next full hour,
//     clamped into [openingHour, closingHour-1].
//   - past dates are the caller's responsibility and behave like future ones.
func ComputeSlots(openingTime, closingTime string, date, now time.Time, pricePerHour float64) ([]Slot, time.Time, error) {
	openHour, openMinute, err := models.ParseClock(openingTime)
	if err != nil {
		return nil, time.Time{}, err
	}
	closeHour, closeMinute, err := models.ParseClock(closingTime)
	if err != nil {
		return nil, time.Time{}, err
	}

	isToday := SameDay(date, now)
	currentHour := now.Hour()

	if isToday && currentHour >= closeHour-1 {
		// Closing soon or closed for today; roll over to tomorrow's full
		// window so callers always get a non-empty next-bookable day.
		tomorrow := now.AddDate(0, 0, 1)
		start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), openHour, openMinute, 0, 0, now.Location())
		end := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), closeHour, closeMinute, 0, 0, now.Location())
		return generateHourlySlots(start, end, pricePerHour), start, nil
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), openHour, openMinute, 0, 0, now.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), closeHour, closeMinute, 0, 0, now.Location())

	if isToday {
		// Earliest bookable slot today is the next full hour, never the
		// current hour and never past the last full hour before closing.
		nextHour := currentHour + 1
		if nextHour < openHour {
			nextHour = openHour
		}
		if nextHour > closeHour-1 {
			nextHour = closeHour - 1
		}
		start = time.Date(date.Year(), date.Month(), date.Day(), nextHour, 0, 0, 0, now.Location())
	}

	if !start.Before(end) {
		return []Slot{}, date, nil
	}

	return generateHourlySlots(start, end, pricePerHour), date, nil
}

// SameDay compares two instants by calendar day, ignoring clock time.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func generateHourlySlots(start, end time.Time, pricePerHour float64) []Slot {
	slots := make([]Slot, 0, 16)
	for t := start; t.Before(end); t = t.Add(time.Hour) {
		slots = append(slots, Slot{
			StartTime:   t.Format(clockLayout),
			EndTime:     t.Add(time.Hour).Format(clockLayout),
			IsAvailable: true,
			Price:       pricePerHour,
		})
	}
	return slots
}

// MarkAvailability flags each slot as taken when an existing active booking
// matches its exact (startTime, endTime) pair. String equality is the display
// rule; admission uses the stricter interval-overlap check in the repo.
func MarkAvailability(slots []Slot, bookings []*models.Booking) []Slot {
	for i := range slots {
		for _, b := range bookings {
			if b.StartTime == slots[i].StartTime && b.EndTime == slots[i].EndTime {
				slots[i].IsAvailable = false
				break
			}
		}
	}
	return slots
}

// DurationHours computes the span of [startTime, endTime) in fractional
// hours, both parsed on the same calendar day.
func DurationHours(startTime, endTime string) (float64, error) {
	start, err := time.Parse(clockLayout, startTime)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", startTime, models.ErrValidation)
	}
	end, err := time.Parse(clockLayout, endTime)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", endTime, models.ErrValidation)
	}
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return 0, fmt.Errorf("end time %q must be after start time %q: %w", endTime, startTime, models.ErrValidation)
	}
	return hours, nil
}
