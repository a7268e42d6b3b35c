package models

import "time"

type Slot string

const (
	SlotDay   Slot = "Day"
	SlotNight Slot = "Night"
)

// Tournament describes one team battle to be created.
type Tournament struct {
	DayNum      int
	Slot        Slot
	Name        string
	Description string
	StartsAt    time.Time
}

// Result is the outcome of a single creation attempt. Err is nil on success;
// URL may still be empty when the platform did not say where the arena lives.
type Result struct {
	Tournament Tournament
	URL        string
	Status     int
	Err        error
}

func (r Result) OK() bool { return r.Err == nil }

// RunSummary is what a batch run reports once every tournament was attempted.
type RunSummary struct {
	Date                 string
	Attempted            int
	Succeeded            int
	Failed               int
	LastTournamentDayNum int
	StateUpdated         bool
	DryRun               bool
	Results              []Result
}
