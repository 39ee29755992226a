package report

import (
	"math/rand"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

func in(id, hhmm string) clock.ClockEvent {
	return clock.ClockEvent{ID: id, EmployeeID: "emp-1", Type: clock.EventTypeIn, Timestamp: at(hhmm)}
}

func out(id, hhmm string) clock.ClockEvent {
	return clock.ClockEvent{ID: id, EmployeeID: "emp-1", Type: clock.EventTypeOut, Timestamp: at(hhmm)}
}

func TestReconstructShifts_TwoShiftsInOneDay(t *testing.T) {
	events := []clock.ClockEvent{
		in("a", "09:00"), out("b", "12:00"), in("c", "13:00"), out("d", "17:30"),
	}

	shifts, total := ReconstructShifts(events)

	require.Len(t, shifts, 2)
	assert.Equal(t, at("09:00"), shifts[0].ClockIn)
	assert.Equal(t, at("12:00"), shifts[0].ClockOut)
	assert.InDelta(t, 3.0, shifts[0].DurationHours, 1e-9)
	assert.Equal(t, at("13:00"), shifts[1].ClockIn)
	assert.Equal(t, at("17:30"), shifts[1].ClockOut)
	assert.InDelta(t, 4.5, shifts[1].DurationHours, 1e-9)
	assert.InDelta(t, 7.5, total, 1e-9)
}

func TestReconstructShifts_DoubleInPairsWithSecond(t *testing.T) {
	events := []clock.ClockEvent{in("a", "09:00"), in("b", "09:05"), out("c", "17:00")}

	shifts, total := ReconstructShifts(events)

	require.Len(t, shifts, 1)
	assert.Equal(t, at("09:05"), shifts[0].ClockIn)
	assert.Equal(t, at("17:00"), shifts[0].ClockOut)
	assert.InDelta(t, 7.0+55.0/60.0, shifts[0].DurationHours, 1e-9)
	assert.InDelta(t, 7.916666, total, 1e-5)
}

func TestReconstructShifts_UnpairedEvents(t *testing.T) {
	tests := []struct {
		name       string
		events     []clock.ClockEvent
		wantShifts int
		wantTotal  float64
	}{
		{name: "empty", events: nil},
		{name: "lone IN", events: []clock.ClockEvent{in("a", "09:00")}},
		{name: "lone OUT", events: []clock.ClockEvent{out("a", "17:00")}},
		{name: "only INs", events: []clock.ClockEvent{in("a", "08:00"), in("b", "09:00"), in("c", "10:00")}},
		{name: "only OUTs", events: []clock.ClockEvent{out("a", "08:00"), out("b", "09:00")}},
		{
			name:       "trailing IN ignored",
			events:     []clock.ClockEvent{in("a", "09:00"), out("b", "10:00"), in("c", "11:00")},
			wantShifts: 1,
			wantTotal:  1,
		},
		{
			name:       "OUT before any IN dropped",
			events:     []clock.ClockEvent{out("a", "08:00"), in("b", "09:00"), out("c", "11:00")},
			wantShifts: 1,
			wantTotal:  2,
		},
		{
			name:       "second OUT dropped",
			events:     []clock.ClockEvent{in("a", "09:00"), out("b", "10:00"), out("c", "11:00")},
			wantShifts: 1,
			wantTotal:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shifts, total := ReconstructShifts(tt.events)
			assert.Len(t, shifts, tt.wantShifts)
			assert.InDelta(t, tt.wantTotal, total, 1e-9)
		})
	}
}

func TestReconstructShifts_SortsArbitraryInput(t *testing.T) {
	// the store delivers newest first
	events := []clock.ClockEvent{out("d", "17:30"), in("c", "13:00"), out("b", "12:00"), in("a", "09:00")}

	shifts, total := ReconstructShifts(events)

	require.Len(t, shifts, 2)
	assert.Equal(t, at("09:00"), shifts[0].ClockIn)
	assert.InDelta(t, 7.5, total, 1e-9)
	assert.Equal(t, "d", events[0].ID, "input must not be reordered")
}

func TestReconstructShifts_PermutationInvariant(t *testing.T) {
	events := []clock.ClockEvent{
		in("a", "06:00"), out("b", "07:15"), in("c", "07:20"), in("d", "08:00"),
		out("e", "12:00"), out("f", "12:30"), in("g", "13:00"), out("h", "18:45"), in("i", "19:00"),
	}
	wantShifts, wantTotal := ReconstructShifts(events)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := make([]clock.ClockEvent, len(events))
		copy(shuffled, events)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		gotShifts, gotTotal := ReconstructShifts(shuffled)
		assert.Equal(t, wantShifts, gotShifts)
		assert.Equal(t, wantTotal, gotTotal)
	}
}

func TestReconstructShifts_AlternatingPairs(t *testing.T) {
	var events []clock.ClockEvent
	start := day
	for i := 0; i < 20; i++ {
		clockIn := start.Add(time.Duration(i) * 24 * time.Hour)
		clockOut := clockIn.Add(time.Duration(i+1) * 17 * time.Minute)
		events = append(events,
			clock.ClockEvent{Type: clock.EventTypeIn, Timestamp: clockIn},
			clock.ClockEvent{Type: clock.EventTypeOut, Timestamp: clockOut},
		)
	}

	shifts, total := ReconstructShifts(events)

	require.Len(t, shifts, 20)
	var sum float64
	for _, s := range shifts {
		assert.GreaterOrEqual(t, s.DurationHours, 0.0)
		sum += s.DurationHours
	}
	assert.InDelta(t, sum, total, 1e-9)
}

func TestReconstructShifts_EqualTimestampsKeepInputOrder(t *testing.T) {
	events := []clock.ClockEvent{in("a", "09:00"), out("b", "09:00"), out("c", "10:00")}

	shifts, total := ReconstructShifts(events)

	require.Len(t, shifts, 1)
	assert.Equal(t, 0.0, shifts[0].DurationHours)
	assert.Equal(t, 0.0, total)
}

func TestReconstructShifts_FiltersUnresolvedEvents(t *testing.T) {
	events := []clock.ClockEvent{
		in("a", "09:00"),
		{ID: "pending", Type: clock.EventTypeIn},
		{ID: "bogus", Type: clock.EventType("BREAK"), Timestamp: at("10:00")},
		out("b", "11:00"),
	}

	shifts, total := ReconstructShifts(events)

	require.Len(t, shifts, 1)
	assert.Equal(t, at("09:00"), shifts[0].ClockIn)
	assert.InDelta(t, 2.0, total, 1e-9)
}

func TestReconstructShifts_Deterministic(t *testing.T) {
	events := []clock.ClockEvent{in("a", "09:00"), out("b", "12:00")}

	first, firstTotal := ReconstructShifts(events)
	second, secondTotal := ReconstructShifts(events)

	assert.Equal(t, first, second)
	assert.Equal(t, firstTotal, secondTotal)
}

func TestReconstructShifts_OutRecordedBeforeInIsNeverNegative(t *testing.T) {
	// the OUT is listed first but stamped later, and an OUT stamped earlier than any IN is dropped
	events := []clock.ClockEvent{out("b", "17:00"), in("a", "09:00"), out("z", "08:00")}

	shifts, total := ReconstructShifts(events)

	require.Len(t, shifts, 1)
	assert.InDelta(t, 8.0, shifts[0].DurationHours, 1e-9)
	assert.GreaterOrEqual(t, total, 0.0)
}

func TestSortedEvents_MatchesPairingOrder(t *testing.T) {
	events := []clock.ClockEvent{out("c", "10:00"), in("a", "09:00"), out("b", "09:00")}

	sorted := sortedEvents(events)

	ids := make([]string, 0, len(sorted))
	for _, e := range sorted {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, "c", events[0].ID, "input is not reordered")

	shifts, _ := ReconstructShifts(events)
	require.Len(t, shifts, 1)
	assert.Equal(t, sorted[0].Timestamp, shifts[0].ClockIn)
	assert.Equal(t, sorted[1].Timestamp, shifts[0].ClockOut)
}
