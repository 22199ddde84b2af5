// Package schedule parses the wire formats for dates and times of day
// and detects facility booking conflicts.
package schedule

import (
	"fmt"
	"time"

	"nestify/internal/model"

	"gorm.io/gorm"
)

const (
	// DateLayout is the wire format for calendar dates (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format for times of day (HH:MM).
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseClock parses an HH:MM string and returns it zero-padded, so
// stored values compare chronologically as strings.
func ParseClock(s string) (string, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: use HH:MM", s)
	}
	return t.Format(ClockLayout), nil
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Back-to-back slots (aEnd == bStart) do not
// overlap. Inputs must be zero-padded HH:MM strings.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// FindConflict scans confirmed bookings for the same society, facility
// and date and returns the first whose interval overlaps [start,end).
// Returns nil when the slot is free.
func FindConflict(db *gorm.DB, societyID uint, facility string, date time.Time, start, end string) (*model.Booking, error) {
	var conflict model.Booking
	err := db.Where(
		"society_id = ? AND facility_name = ? AND booking_date = ? AND status = ? AND start_time < ? AND end_time > ?",
		societyID, facility, date, model.BookingStatusConfirmed, end, start,
	).First(&conflict).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conflict, nil
}
