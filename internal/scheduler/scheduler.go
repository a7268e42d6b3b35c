package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"teambattles/internal/models"
	"teambattles/internal/schedule"
	"teambattles/internal/state"
)

// SubmissionDelay spaces out creation requests to stay under the platform's rate limit.
const SubmissionDelay = 10 * time.Second

// TournamentCreator is the interface used by the scheduler to create team battles.
// Implementations make a single attempt and report the outcome in the Result.
type TournamentCreator interface {
	CreateTeamBattle(ctx context.Context, t models.Tournament) models.Result
}

// RunNotifier receives the summary once a batch is finalized.
type RunNotifier interface {
	NotifyRun(ctx context.Context, summary models.RunSummary)
}

// Scheduler creates one batch of team battles and advances the sequence state.
type Scheduler struct {
	creator  TournamentCreator
	store    state.Store
	notifier RunNotifier
	dryRun   bool
	delay    time.Duration
	sleep    func(time.Duration)
}

type Option func(*Scheduler)

// WithSleep replaces time.Sleep between submissions.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Scheduler) { s.sleep = sleep }
}

// WithNotifier sends the run summary to n after the batch is finalized.
func WithNotifier(n RunNotifier) Option {
	return func(s *Scheduler) { s.notifier = n }
}

// WithDryRun marks summaries as simulated.
func WithDryRun(dryRun bool) Option {
	return func(s *Scheduler) { s.dryRun = dryRun }
}

// New creates a new Scheduler.
func New(creator TournamentCreator, store state.Store, opts ...Option) *Scheduler {
	s := &Scheduler{
		creator: creator,
		store:   store,
		delay:   SubmissionDelay,
		sleep:   time.Sleep,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run attempts every tournament of the batch starting on today. Individual
// failures are tallied, never returned; the error is reserved for a state
// backend that cannot be read, and for a state write that failed after at
// least one tournament was created.
func (s *Scheduler) Run(ctx context.Context, today time.Time) (models.RunSummary, error) {
	summary := models.RunSummary{
		Date:   schedule.FormatDate(today),
		DryRun: s.dryRun,
	}

	current, err := s.loadState(ctx)
	if err != nil {
		log.Printf("ERROR: %v", err)
		return summary, err
	}
	summary.LastTournamentDayNum = current.LastTournamentDayNum

	batch := schedule.Generate(today, current.LastTournamentDayNum+1)
	log.Printf("Creating %d tournaments for %s starting at day %d",
		len(batch), summary.Date, current.LastTournamentDayNum+1)
	if s.dryRun {
		log.Printf("*** DRY RUN MODE: no tournaments will be created ***")
	}

	for i, tournament := range batch {
		if i > 0 {
			log.Printf("Waiting %v before next request...", s.delay)
			s.sleep(s.delay)
		}

		result := s.creator.CreateTeamBattle(ctx, tournament)
		summary.Results = append(summary.Results, result)
		summary.Attempted++
		if result.OK() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	log.Printf("Summary for %s: %d succeeded, %d failed", summary.Date, summary.Succeeded, summary.Failed)

	var saveErr error
	if summary.Succeeded > 0 {
		next := state.State{LastTournamentDayNum: max(schedule.MaxDayNum(batch), current.LastTournamentDayNum)}
		if err := s.store.Save(ctx, next); err != nil {
			saveErr = fmt.Errorf("failed to save state after creating %d tournaments: %w", summary.Succeeded, err)
			log.Printf("ERROR: %v", saveErr)
		} else {
			summary.LastTournamentDayNum = next.LastTournamentDayNum
			summary.StateUpdated = true
			log.Printf("Updated lastTournamentDayNum to %d", next.LastTournamentDayNum)
		}
	} else {
		log.Printf("No tournaments created, state left at %d", current.LastTournamentDayNum)
	}

	if s.notifier != nil {
		s.notifier.NotifyRun(ctx, summary)
	}

	return summary, saveErr
}

// loadState falls back to the default for missing or unusable state. Any other
// error means the backend was not reached and is returned.
func (s *Scheduler) loadState(ctx context.Context) (state.State, error) {
	current, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, state.ErrNotFound):
		log.Printf("WARNING: no saved state, starting from lastTournamentDayNum=%d", state.DefaultLastTournamentDayNum)
		return state.Default(), nil
	case errors.Is(err, state.ErrUnreadable):
		log.Printf("WARNING: could not use saved state (%v), starting from lastTournamentDayNum=%d",
			err, state.DefaultLastTournamentDayNum)
		return state.Default(), nil
	case err != nil:
		return state.State{}, fmt.Errorf("failed to load state: %w", err)
	}
	log.Printf("Loaded state: lastTournamentDayNum=%d", current.LastTournamentDayNum)
	return current, nil
}

// ExitCode maps a finished run to the process exit status.
func ExitCode(summary models.RunSummary, err error) int {
	if err != nil || summary.Failed > 0 {
		return 1
	}
	return 0
}
