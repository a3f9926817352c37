package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driving"
)

// --- Mock implementations for scheduler testing ---

// mockSchedulerStore implements driven.SchedulerStore for testing.
type mockSchedulerStore struct {
	mu      sync.RWMutex
	tasks   map[string]*domain.ScheduledTask
	results map[string][]domain.TaskResult
}

func newMockSchedulerStore() *mockSchedulerStore {
	return &mockSchedulerStore{
		tasks:   make(map[string]*domain.ScheduledTask),
		results: make(map[string][]domain.TaskResult),
	}
}

func (m *mockSchedulerStore) GetTask(_ context.Context, taskID string) (*domain.ScheduledTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, exists := m.tasks[taskID]
	if !exists {
		return nil, nil
	}
	taskCopy := *task
	return &taskCopy, nil
}

func (m *mockSchedulerStore) ListTasks(_ context.Context) ([]domain.ScheduledTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tasks := make([]domain.ScheduledTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (m *mockSchedulerStore) SaveTask(_ context.Context, task *domain.ScheduledTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task == nil {
		return domain.ErrInvalidInput
	}
	taskCopy := *task
	m.tasks[task.ID] = &taskCopy
	return nil
}

func (m *mockSchedulerStore) RecordResult(_ context.Context, result *domain.TaskResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if result == nil {
		return domain.ErrInvalidInput
	}
	m.results[result.TaskID] = append(m.results[result.TaskID], *result)
	return nil
}

func (m *mockSchedulerStore) GetTaskHistory(_ context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := m.results[taskID]
	if len(results) > limit {
		results = results[len(results)-limit:]
	}
	return results, nil
}

func (m *mockSchedulerStore) PruneHistory(_ context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, results := range m.results {
		if len(results) > keep {
			m.results[id] = results[len(results)-keep:]
		}
	}
	return nil
}

func (m *mockSchedulerStore) resultCount(taskID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.results[taskID])
}

// mockRunner implements driving.PipelineRunner.
type mockRunner struct {
	mu     sync.Mutex
	calls  int
	report *domain.RunReport
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ time.Time) (*domain.RunReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockRunner) Status(_ context.Context) (*driving.RunStatus, error) {
	return &driving.RunStatus{}, nil
}

func (m *mockRunner) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockNotifier implements driven.Notifier.
type mockNotifier struct {
	mu      sync.Mutex
	reports []*domain.RunReport
}

func (m *mockNotifier) Publish(_ context.Context, report *domain.RunReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, report)
	return nil
}

func (m *mockNotifier) published() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reports)
}

// --- Tests ---

func startScheduler(t *testing.T, s *Scheduler) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Start(context.Background())
	}()
	t.Cleanup(func() {
		require.NoError(t, s.Stop())
		<-done
	})
}

func TestSchedulerRunsDueTaskAndRecordsResult(t *testing.T) {
	store := newMockSchedulerStore()
	runner := &mockRunner{report: &domain.RunReport{
		RunID:   "run-1",
		Records: []domain.CorporateAction{{AccessionNumber: "0000320193-24-000001"}},
	}}
	notifier := &mockNotifier{}

	s := NewScheduler(domain.ScheduleSettings{Enabled: true, Interval: time.Hour}, store, runner, notifier)
	startScheduler(t, s)

	// The task is due immediately on first start.
	require.Eventually(t, func() bool {
		return store.resultCount(domain.TaskIDDailyRun) > 0
	}, 2*time.Second, 10*time.Millisecond)

	results, err := store.GetTaskHistory(context.Background(), domain.TaskIDDailyRun, 10)
	require.NoError(t, err)
	assert.True(t, results[0].Success)
	assert.Equal(t, 1, results[0].ItemsProcessed)
	assert.Equal(t, 1, notifier.published())

	task, err := store.GetTask(context.Background(), domain.TaskIDDailyRun)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.False(t, task.LastRun.IsZero())
	assert.True(t, task.NextRun.After(task.LastRun))
}

func TestSchedulerRecordsFailures(t *testing.T) {
	store := newMockSchedulerStore()
	runner := &mockRunner{err: errors.New("listing failed")}

	s := NewScheduler(domain.ScheduleSettings{Enabled: true, Interval: time.Hour}, store, runner, nil)
	startScheduler(t, s)

	require.Eventually(t, func() bool {
		return store.resultCount(domain.TaskIDDailyRun) > 0
	}, 2*time.Second, 10*time.Millisecond)

	results, err := store.GetTaskHistory(context.Background(), domain.TaskIDDailyRun, 10)
	require.NoError(t, err)
	assert.False(t, results[0].Success)
	assert.Equal(t, "listing failed", results[0].Error)

	task, err := store.GetTask(context.Background(), domain.TaskIDDailyRun)
	require.NoError(t, err)
	assert.Equal(t, "listing failed", task.LastError)
}

func TestSchedulerRunInProgressIsNotAFailure(t *testing.T) {
	store := newMockSchedulerStore()
	runner := &mockRunner{err: domain.ErrRunInProgress}

	s := NewScheduler(domain.ScheduleSettings{Enabled: true, Interval: time.Hour}, store, runner, nil)
	startScheduler(t, s)

	require.Eventually(t, func() bool {
		return store.resultCount(domain.TaskIDDailyRun) > 0
	}, 2*time.Second, 10*time.Millisecond)

	results, err := store.GetTaskHistory(context.Background(), domain.TaskIDDailyRun, 10)
	require.NoError(t, err)
	assert.True(t, results[0].Success)
	assert.Zero(t, results[0].ItemsProcessed)
}

func TestSchedulerDisabledTaskDoesNotRun(t *testing.T) {
	store := newMockSchedulerStore()
	runner := &mockRunner{report: &domain.RunReport{}}

	s := NewScheduler(domain.ScheduleSettings{Enabled: false, Interval: time.Hour}, store, runner, nil)
	startScheduler(t, s)

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, runner.callCount())
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	s := NewScheduler(domain.ScheduleSettings{}, newMockSchedulerStore(), &mockRunner{report: &domain.RunReport{}}, nil)

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
}

func TestSchedulerKeepsExistingTaskSchedule(t *testing.T) {
	store := newMockSchedulerStore()
	next := time.Now().Add(30 * time.Minute)
	require.NoError(t, store.SaveTask(context.Background(), &domain.ScheduledTask{
		ID:       domain.TaskIDDailyRun,
		Name:     "Daily filing run",
		Interval: time.Hour,
		NextRun:  next,
		Enabled:  true,
	}))

	runner := &mockRunner{report: &domain.RunReport{}}
	s := NewScheduler(domain.ScheduleSettings{Enabled: true, Interval: time.Hour}, store, runner, nil)
	startScheduler(t, s)

	// Not due yet: initialisation must not reset NextRun to now.
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, runner.callCount())

	task, err := store.GetTask(context.Background(), domain.TaskIDDailyRun)
	require.NoError(t, err)
	assert.WithinDuration(t, next, task.NextRun, time.Second)
}
