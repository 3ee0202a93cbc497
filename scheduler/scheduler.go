// Package scheduler dispatches named events onto a beacon bus on a
// schedule: fixed intervals, cron expressions, or one-shot wall-clock
// times. It exists for the "scheduled tick" producer pattern — components
// subscribe to a tick event and the scheduler is the only producer.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	cronlib "github.com/robfig/cron/v3"

	"github.com/abakedjoetato/beacon"
)

// Bus is the dispatch surface the scheduler needs. *beacon.Dispatcher
// satisfies it.
type Bus interface {
	Dispatch(ctx context.Context, event string, payload any) beacon.Outcomes
}

var (
	ErrEmptyTaskID = errors.New("scheduler: empty task id")
	ErrBadInterval = errors.New("scheduler: interval must be positive")
)

// cronParser supports standard 5-field cron and descriptors like "@every 30s".
var cronParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// task is one scheduled dispatch. Exactly one of interval, schedule, or at
// is set, fixed at creation.
type task struct {
	id       string
	event    string
	payload  any
	interval time.Duration
	schedule cronlib.Schedule
	at       time.Time
	once     bool

	cancel context.CancelFunc
}

// next returns how long to wait before the task's next firing.
func (t *task) next(now time.Time) time.Duration {
	var d time.Duration
	switch {
	case t.schedule != nil:
		d = t.schedule.Next(now).Sub(now)
	case t.once:
		d = t.at.Sub(now)
	default:
		d = t.interval
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Scheduler runs scheduled tasks, each on its own goroutine, dispatching
// onto the bus when due. Tasks may be added before or after Start;
// re-scheduling an existing task id replaces the previous schedule.
//
// Handler failures are already contained by the bus; the scheduler logs
// aggregate failures per firing and keeps going.
type Scheduler struct {
	bus    Bus
	logger *slog.Logger

	mu      sync.Mutex
	tasks   map[string]*task
	running bool
	baseCtx context.Context
	cancel  context.CancelFunc

	wg sync.WaitGroup
}

// New creates a Scheduler dispatching onto bus.
func New(bus Bus, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		bus:    bus,
		logger: logger,
		tasks:  make(map[string]*task),
	}
}

// Every schedules a repeating dispatch of event with payload, firing every
// interval. The first firing happens one interval after the task starts.
func (s *Scheduler) Every(taskID string, interval time.Duration, event string, payload any) error {
	if interval <= 0 {
		return ErrBadInterval
	}
	return s.add(&task{id: taskID, event: event, payload: payload, interval: interval})
}

// Cron schedules a repeating dispatch driven by a cron expression
// (standard 5-field, or descriptors like "@hourly" and "@every 30s").
func (s *Scheduler) Cron(taskID, expr, event string, payload any) error {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return fmt.Errorf("scheduler: parse %q: %w", expr, err)
	}
	return s.add(&task{id: taskID, event: event, payload: payload, schedule: sched})
}

// Once schedules a single dispatch at the given wall-clock time. A time in
// the past fires immediately. The task removes itself after firing.
func (s *Scheduler) Once(taskID string, at time.Time, event string, payload any) error {
	return s.add(&task{id: taskID, event: event, payload: payload, at: at, once: true})
}

func (s *Scheduler) add(t *task) error {
	if t.id == "" {
		return ErrEmptyTaskID
	}
	if t.event == "" {
		return beacon.ErrEmptyEventName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.tasks[t.id]; ok && prev.cancel != nil {
		prev.cancel()
		s.logger.Debug("replaced scheduled task", slog.String("task", t.id))
	}
	s.tasks[t.id] = t
	if s.running {
		s.launch(t)
	}
	return nil
}

// Cancel removes a scheduled task. Unknown ids are a no-op. Returns whether
// a task was removed.
func (s *Scheduler) Cancel(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return false
	}
	if t.cancel != nil {
		t.cancel()
	}
	delete(s.tasks, taskID)
	return true
}

// Tasks returns the sorted ids of all scheduled tasks.
func (s *Scheduler) Tasks() []string {
	s.mu.Lock()
	ids := make([]string, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	sort.Strings(ids)
	return ids
}

// Start launches all scheduled tasks. It returns immediately; tasks run
// until cancelled or until Stop. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	s.baseCtx, s.cancel = context.WithCancel(context.Background())
	s.running = true
	for _, t := range s.tasks {
		s.launch(t)
	}

	s.logger.Info("scheduler started", slog.Int("tasks", len(s.tasks)))
	return nil
}

// Stop cancels every task and waits for their goroutines to exit, or until
// ctx is done. Scheduled tasks survive Stop and run again after a new
// Start.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// launch starts the task goroutine. Caller holds s.mu.
func (s *Scheduler) launch(t *task) {
	ctx, cancel := context.WithCancel(s.baseCtx)
	t.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx, t)
}

func (s *Scheduler) run(ctx context.Context, t *task) {
	defer s.wg.Done()

	timer := time.NewTimer(t.next(time.Now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.fire(ctx, t)
			if t.once {
				s.remove(t)
				return
			}
			timer.Reset(t.next(time.Now()))
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, t *task) {
	outcomes := s.bus.Dispatch(ctx, t.event, t.payload)
	if err := outcomes.Err(); err != nil {
		s.logger.Warn("scheduled dispatch had failures",
			slog.String("task", t.id),
			slog.String("event", t.event),
			slog.String("error", err.Error()),
		)
		return
	}
	s.logger.Debug("scheduled dispatch completed",
		slog.String("task", t.id),
		slog.String("event", t.event),
		slog.Int("handlers", len(outcomes)),
	)
}

// remove deletes a one-shot task after it fires, unless it was already
// replaced by a newer task under the same id.
func (s *Scheduler) remove(t *task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.tasks[t.id]; ok && cur == t {
		delete(s.tasks, t.id)
	}
}
