package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultLastTournamentDayNum is used when no usable state has been persisted yet.
const DefaultLastTournamentDayNum = 24

var (
	// ErrNotFound is returned by a Store that has nothing persisted.
	ErrNotFound = errors.New("state not found")
	// ErrUnreadable marks persisted state that exists but cannot be used.
	ErrUnreadable = errors.New("state unreadable")
)

// State is the persisted sequence counter.
type State struct {
	LastTournamentDayNum int `json:"lastTournamentDayNum"`
}

func Default() State {
	return State{LastTournamentDayNum: DefaultLastTournamentDayNum}
}

// Store persists State between runs. Implementations assume a single writer.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
	Close() error
}

// Decode parses a persisted state document. Malformed documents and a missing
// or negative counter are reported as ErrUnreadable.
func Decode(data []byte) (State, error) {
	var doc struct {
		LastTournamentDayNum *int `json:"lastTournamentDayNum"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return State{}, fmt.Errorf("%w: failed to parse state: %v", ErrUnreadable, err)
	}
	if doc.LastTournamentDayNum == nil {
		return State{}, fmt.Errorf("%w: missing lastTournamentDayNum", ErrUnreadable)
	}
	if *doc.LastTournamentDayNum < 0 {
		return State{}, fmt.Errorf("%w: negative lastTournamentDayNum %d", ErrUnreadable, *doc.LastTournamentDayNum)
	}
	return State{LastTournamentDayNum: *doc.LastTournamentDayNum}, nil
}

// Encode renders the state document pretty-printed.
func Encode(s State) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return append(data, '\n'), nil
}
