package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/tasks"
)

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (r *recordingEnqueuer) Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, tasks...)
	return []string{"task-1"}, nil
}

func TestAuditCleanupScheduler_RunNow(t *testing.T) {
	enqueuer := &recordingEnqueuer{}
	s := NewAuditCleanupScheduler(enqueuer, "0 3 * * *", 14)

	id, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)

	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, tasks.CleanupAuditEventsTask{RetentionDays: 14}, enqueuer.tasks[0])
}

func TestAuditCleanupScheduler_RunNowError(t *testing.T) {
	s := NewAuditCleanupScheduler(&recordingEnqueuer{err: errors.New("queue closed")}, "0 3 * * *", 14)

	_, err := s.RunNow(context.Background())
	assert.Error(t, err)
}

func TestAuditCleanupScheduler_StartStop(t *testing.T) {
	s := NewAuditCleanupScheduler(&recordingEnqueuer{}, "0 3 * * *", 30)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(ctx))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestAuditCleanupScheduler_StopsWithContext(t *testing.T) {
	s := NewAuditCleanupScheduler(&recordingEnqueuer{}, "*/5 * * * *", 30)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestAuditCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewAuditCleanupScheduler(&recordingEnqueuer{}, "every night", 30)

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("0 3 * *"))
	assert.Error(t, ValidateCronSchedule("@daily now"))
}

func TestGetNextRunTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)

	next, err := GetNextRunTime("0 3 * * *", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 2, 3, 0, 0, 0, time.Local), next)

	_, err = GetNextRunTime("bogus", now)
	assert.Error(t, err)
}

func TestGetCronDescription(t *testing.T) {
	assert.Equal(t, "Daily at 03:00", GetCronDescription("0 3 * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", GetCronDescription("5 4 * * *"))
}
