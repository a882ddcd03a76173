package services

import (
	"time"

	"github.com/cwaltman/replen/pkg/domain/entities"
)

// calendarEpoch anchors week ordinal 0. Monday 2024-01-01 UTC; every week
// ordinal is a whole number of weeks from this instant.
var calendarEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Clock supplies the current instant. Injecting it keeps everything that
// depends on "now" deterministic under test.
type Clock func() time.Time

// WeekOrdinal maps an instant to its business week ordinal relative to the
// epoch. Instants before the epoch map to negative ordinals.
func WeekOrdinal(t time.Time) int {
	secs := t.UTC().Unix() - calendarEpoch.Unix()
	const weekSecs = 7 * 24 * 60 * 60
	if secs >= 0 {
		return int(secs / weekSecs)
	}
	return int((secs - weekSecs + 1) / weekSecs)
}

// CurrentWeekOrdinal returns the week ordinal for the clock's current instant
func CurrentWeekOrdinal(clock Clock) int {
	return WeekOrdinal(clock())
}

// WeekStart returns the calendar date a week ordinal begins on
func WeekStart(ordinal int) time.Time {
	return calendarEpoch.AddDate(0, 0, ordinal*7)
}

// WeekSlotFor pairs a week ordinal with its start date
func WeekSlotFor(ordinal int) entities.WeekSlot {
	return entities.WeekSlot{Week: ordinal, StartDate: WeekStart(ordinal)}
}
