package listeners

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"rtub-system/internal/entities"
	domainevents "rtub-system/internal/events"
	"rtub-system/internal/services"
	"rtub-system/pkg/eventbus"
)

// AuditListener turns domain events into audit trail lines.
type AuditListener struct {
	auditService services.AuditServiceInterface
	logger       *zap.Logger
}

func NewAuditListener(auditService services.AuditServiceInterface, logger *zap.Logger) *AuditListener {
	return &AuditListener{auditService: auditService, logger: logger}
}

func (l *AuditListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(domainevents.MemberUpdatedName, l.onMemberUpdated)
	bus.Subscribe(domainevents.EventCreatedName, l.onEventCreated)
	bus.Subscribe(domainevents.TransactionRecordedName, l.onTransactionRecorded)
	bus.Subscribe(domainevents.OrderPlacedName, l.onOrderPlaced)
}

func (l *AuditListener) onMemberUpdated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(domainevents.MemberUpdated)
	if !ok {
		return nil
	}
	return l.auditService.Record(ctx, entities.AuditRecord{
		ActorID:  e.ActorID,
		Action:   "member.updated",
		Entity:   "member",
		EntityID: strconv.FormatUint(e.MemberID, 10),
		Detail:   &e.Change,
	})
}

func (l *AuditListener) onEventCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(domainevents.EventCreated)
	if !ok {
		return nil
	}
	return l.auditService.Record(ctx, entities.AuditRecord{
		ActorID:  e.ActorID,
		Action:   "event.created",
		Entity:   "event",
		EntityID: strconv.FormatUint(e.EventID, 10),
		Detail:   &e.EventName,
	})
}

func (l *AuditListener) onTransactionRecorded(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(domainevents.TransactionRecorded)
	if !ok {
		return nil
	}
	detail := fmt.Sprintf("%s %d cents", e.Kind, e.AmountCents)
	return l.auditService.Record(ctx, entities.AuditRecord{
		ActorID:  e.ActorID,
		Action:   "finance.recorded",
		Entity:   "transaction",
		EntityID: strconv.FormatUint(e.TransactionID, 10),
		Detail:   &detail,
	})
}

func (l *AuditListener) onOrderPlaced(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(domainevents.OrderPlaced)
	if !ok {
		return nil
	}
	detail := fmt.Sprintf("total %d cents", e.TotalCents)
	return l.auditService.Record(ctx, entities.AuditRecord{
		ActorID:  e.MemberID,
		Action:   "shop.order_placed",
		Entity:   "shop_order",
		EntityID: strconv.FormatUint(e.OrderID, 10),
		Detail:   &detail,
	})
}
