package report

import (
	"sort"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
)

// ReconstructShifts pairs one employee's clock events into completed shifts.
//
// Events may arrive in any order. They are sorted by timestamp (stable, so
// equal timestamps keep their input order) and scanned with a single open
// entry: an IN replaces whatever IN is still open, an OUT closes the open IN
// into a shift, an OUT with nothing open is dropped and an IN still open at
// the end produces nothing. Events without a resolved timestamp or with an
// unknown type are filtered out before sorting.
//
// The input slice is not modified.
func ReconstructShifts(events []clock.ClockEvent) ([]report.Shift, float64) {
	sorted := pairableEvents(events)
	sortByTimestamp(sorted)

	shifts := make([]report.Shift, 0, len(sorted)/2)
	var total float64
	var open *clock.ClockEvent

	for i := range sorted {
		event := sorted[i]
		switch event.Type {
		case clock.EventTypeIn:
			// Last IN wins: an earlier unmatched IN is discarded
			open = &sorted[i]
		case clock.EventTypeOut:
			if open == nil {
				continue
			}
			hours := event.Timestamp.Sub(open.Timestamp).Hours()
			shifts = append(shifts, report.Shift{
				ClockIn:       open.Timestamp,
				ClockOut:      event.Timestamp,
				DurationHours: hours,
			})
			total += hours
			open = nil
		}
	}

	return shifts, total
}

// pairableEvents copies the events that can take part in pairing.
func pairableEvents(events []clock.ClockEvent) []clock.ClockEvent {
	out := make([]clock.ClockEvent, 0, len(events))
	for _, e := range events {
		if e.Timestamp.IsZero() || !e.Type.IsValid() {
			continue
		}
		out = append(out, e)
	}
	return out
}

// sortedEvents returns a copy of events in ascending timestamp order.
func sortedEvents(events []clock.ClockEvent) []clock.ClockEvent {
	out := make([]clock.ClockEvent, len(events))
	copy(out, events)
	sortByTimestamp(out)
	return out
}

// sortByTimestamp orders events ascending in place. Equal timestamps keep their order.
func sortByTimestamp(events []clock.ClockEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}
