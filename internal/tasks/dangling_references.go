package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DanglingReferenceCounter counts books whose author or category row is gone.
type DanglingReferenceCounter interface {
	CountDangling(ctx context.Context) (int64, error)
}

// CheckDanglingReferencesTask reports books pointing at missing authors or categories.
type CheckDanglingReferencesTask struct{}

// Config returns the queue configuration for reference checks.
func (t CheckDanglingReferencesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "check_dangling_references",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CheckDanglingReferencesProcessor creates a processor function for CheckDanglingReferencesTask.
func CheckDanglingReferencesProcessor(counter DanglingReferenceCounter, reporter MaintenanceLogger) backlite.QueueProcessor[CheckDanglingReferencesTask] {
	return func(ctx context.Context, task CheckDanglingReferencesTask) error {
		if counter == nil {
			return fmt.Errorf("dangling reference counter not configured")
		}

		dangling, err := counter.CountDangling(ctx)
		if err != nil {
			return fmt.Errorf("count dangling references: %w", err)
		}

		log.Printf("[TASK] Found %d books with dangling references", dangling)
		var problem error
		if dangling > 0 {
			problem = fmt.Errorf("%d books reference a missing author or category", dangling)
		}
		report(ctx, reporter, "reference_check",
			fmt.Sprintf("Found %d books with dangling references", dangling), problem)
		return nil
	}
}

// NewCheckDanglingReferencesQueue creates a backlite queue for reference checks.
func NewCheckDanglingReferencesQueue(counter DanglingReferenceCounter, reporter MaintenanceLogger) backlite.Queue {
	return backlite.NewQueue(CheckDanglingReferencesProcessor(counter, reporter))
}
