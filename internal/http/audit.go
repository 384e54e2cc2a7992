package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database/query"
	"github.com/mrlokans/library/internal/entities"
)

// AuditReader reads the audit trail.
type AuditReader interface {
	GetEvents(ctx context.Context, eventType entities.AuditEventType, page query.Page) ([]entities.AuditEvent, int64, error)
}

type AuditController struct {
	reader          AuditReader
	defaultPageSize int
}

func NewAuditController(reader AuditReader, defaultPageSize int) *AuditController {
	return &AuditController{
		reader:          reader,
		defaultPageSize: defaultPageSize,
	}
}

type AuditPage struct {
	Events      []entities.AuditEvent `json:"events"`
	CurrentPage int                   `json:"currentPage"`
	TotalPages  int                   `json:"totalPages"`
	TotalEvents int64                 `json:"totalEvents"`
}

var auditEventTypes = map[entities.AuditEventType]bool{
	entities.AuditEventCreate:      true,
	entities.AuditEventUpdate:      true,
	entities.AuditEventDelete:      true,
	entities.AuditEventMaintenance: true,
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/audit
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	page, ok := parsePage(c, ac.defaultPageSize)
	if !ok {
		return
	}

	eventType := entities.AuditEventType(c.Query("type"))
	if eventType != "" && !auditEventTypes[eventType] {
		respondBadRequest(c, "unknown event type: "+string(eventType))
		return
	}

	events, total, err := ac.reader.GetEvents(c.Request.Context(), eventType, page)
	if err != nil {
		respondInternalError(c, err, "audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, AuditPage{
		Events:      events,
		CurrentPage: page.Number,
		TotalPages:  page.TotalPages(total),
		TotalEvents: total,
	})
}
