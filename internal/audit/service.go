package audit

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/library/internal/database/query"
	"github.com/mrlokans/library/internal/entities"
)

// Store persists audit events.
type Store interface {
	LogEvent(ctx context.Context, event *entities.AuditEvent) error
	GetEvents(ctx context.Context, eventType entities.AuditEventType, page query.Page) ([]entities.AuditEvent, int64, error)
	DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error)
}

// Service provides high-level audit logging functionality.
type Service struct {
	store Store
	wg    sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

type requestIDKey struct{}

// WithRequestID returns a context carrying the request id recorded on events.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	if event.RequestID == "" {
		event.RequestID = RequestID(ctx)
	}
	return s.store.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// A nil Service discards the event.
func (s *Service) LogAsync(ctx context.Context, event *entities.AuditEvent) {
	if s == nil {
		return
	}
	// The write outlives the request that triggered it.
	ctx = context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Log(ctx, event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every pending asynchronous write has finished.
func (s *Service) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}

// LogCreate records the creation of a catalog record.
func (s *Service) LogCreate(ctx context.Context, entityType string, entityID uint, entityName string) {
	s.LogAsync(ctx, mutation(entities.AuditEventCreate, "Created", entityType, entityID, entityName))
}

// LogUpdate records an edit of a catalog record.
func (s *Service) LogUpdate(ctx context.Context, entityType string, entityID uint, entityName string) {
	s.LogAsync(ctx, mutation(entities.AuditEventUpdate, "Updated", entityType, entityID, entityName))
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(ctx context.Context, entityType string, entityID uint, entityName string) {
	s.LogAsync(ctx, mutation(entities.AuditEventDelete, "Deleted", entityType, entityID, entityName))
}

// LogMaintenance records the outcome of a background job.
func (s *Service) LogMaintenance(ctx context.Context, action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventMaintenance,
		Action:      action,
		Description: truncate(description, 500),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(ctx, event)
}

func mutation(eventType entities.AuditEventType, verb, entityType string, entityID uint, entityName string) *entities.AuditEvent {
	return &entities.AuditEvent{
		EventType:   eventType,
		Action:      entityType + "_" + string(eventType),
		Description: truncate(fmt.Sprintf("%s %s: %s", verb, entityType, entityName), 500),
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	}
}

// GetEvents retrieves paginated audit events. An empty eventType matches
// every type.
func (s *Service) GetEvents(ctx context.Context, eventType entities.AuditEventType, page query.Page) ([]entities.AuditEvent, int64, error) {
	return s.store.GetEvents(ctx, eventType, page)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.store.DeleteOldEvents(ctx, cutoff)
}

// truncate shortens s to at most maxLen bytes, cutting on a rune boundary.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := max(maxLen-3, 0)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
