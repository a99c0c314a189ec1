package domain

import "time"

// BookingTimeSlot represents a bookable time range on a date
type BookingTimeSlot struct {
	ID        string
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Duration  int    // minutes
	Available bool
}

// StartOn returns the slot start on the given date as RFC3339 in UTC
func (s *BookingTimeSlot) StartOn(date string) (string, error) {
	return combine(date, s.StartTime)
}

// EndOn returns the slot end on the given date as RFC3339 in UTC
func (s *BookingTimeSlot) EndOn(date string) (string, error) {
	return combine(date, s.EndTime)
}

func combine(date, clock string) (string, error) {
	t, err := time.Parse(DateFormat+" "+TimeFormat, date+" "+clock)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(time.RFC3339), nil
}
