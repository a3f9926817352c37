package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driving"
)

// historyKeep is how many task results are retained per task.
const historyKeep = 100

// Scheduler manages the recurring daily run.
// It is a pure core service with no external control API.
type Scheduler struct {
	config   domain.ScheduleSettings
	store    driven.SchedulerStore
	runner   driving.PipelineRunner
	notifier driven.Notifier

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler. The notifier is optional; nil means
// completed runs are only recorded in task history.
func NewScheduler(
	config domain.ScheduleSettings,
	store driven.SchedulerStore,
	runner driving.PipelineRunner,
	notifier driven.Notifier,
) *Scheduler {
	return &Scheduler{
		config:   config,
		store:    store,
		runner:   runner,
		notifier: notifier,
	}
}

// Start begins the scheduler loop. This method blocks until Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	if err := s.initialiseTasks(ctx); err != nil {
		log.Printf("scheduler: failed to initialise tasks: %v", err)
	}

	return s.run(ctx)
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	// Wait for running tasks to complete
	s.wg.Wait()

	return nil
}

// initialiseTasks ensures the daily run task exists in the store.
func (s *Scheduler) initialiseTasks(ctx context.Context) error {
	task, err := s.store.GetTask(ctx, domain.TaskIDDailyRun)
	if err != nil {
		return err
	}

	if task == nil {
		task = &domain.ScheduledTask{
			ID:       domain.TaskIDDailyRun,
			Name:     "Daily filing run",
			Interval: s.config.Interval,
			Enabled:  s.config.Enabled,
			// Run immediately on first start, then on the interval.
			NextRun: time.Now(),
		}
	} else {
		if task.Interval != s.config.Interval {
			task.Interval = s.config.Interval
			task.NextRun = time.Now().Add(s.config.Interval)
		}
		task.Enabled = s.config.Enabled
	}

	return s.store.SaveTask(ctx, task)
}

// run is the main scheduler loop.
func (s *Scheduler) run(ctx context.Context) error {
	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks finds and executes tasks that are due.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		log.Printf("scheduler: failed to list tasks: %v", err)
		return
	}

	now := time.Now()
	for i := range tasks {
		task := &tasks[i]
		if !task.Enabled {
			continue
		}
		if task.NextRun.IsZero() || !task.NextRun.After(now) {
			s.runTask(ctx, task)
		}
	}
}

// runTask executes a single task.
func (s *Scheduler) runTask(ctx context.Context, task *domain.ScheduledTask) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		result := &domain.TaskResult{
			TaskID:    task.ID,
			StartedAt: time.Now(),
		}

		var err error
		switch task.ID {
		case domain.TaskIDDailyRun:
			result.ItemsProcessed, err = s.runDaily(ctx)
		default:
			log.Printf("scheduler: unknown task ID: %s", task.ID)
			return
		}

		result.EndedAt = time.Now()
		if err != nil {
			result.Success = false
			result.Error = err.Error()
			task.LastError = err.Error()
		} else {
			result.Success = true
			task.LastError = ""
			task.LastSuccess = result.EndedAt
		}

		// Update task state
		task.LastRun = result.StartedAt
		task.NextRun = result.EndedAt.Add(task.Interval)

		if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
			log.Printf("scheduler: failed to save task %s: %v", task.ID, saveErr)
		}

		if recordErr := s.store.RecordResult(ctx, result); recordErr != nil {
			log.Printf("scheduler: failed to record result for %s: %v", task.ID, recordErr)
		}

		if pruneErr := s.store.PruneHistory(ctx, historyKeep); pruneErr != nil {
			log.Printf("scheduler: failed to prune history: %v", pruneErr)
		}
	}()
}

// runDaily processes the most recent business day and publishes the
// report. A run already in progress is not a failure; the next tick
// picks the day up again.
func (s *Scheduler) runDaily(ctx context.Context) (int, error) {
	report, err := s.runner.Run(ctx, time.Time{})
	if err != nil {
		if errors.Is(err, domain.ErrRunInProgress) {
			return 0, nil
		}
		return 0, err
	}

	if s.notifier != nil {
		if err := s.notifier.Publish(ctx, report); err != nil {
			log.Printf("scheduler: failed to publish report %s: %v", report.RunID, err)
		}
	}

	return len(report.Records), nil
}
