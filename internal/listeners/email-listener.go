package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rtub-system/internal/entities"
	domainevents "rtub-system/internal/events"
	"rtub-system/internal/repositories"
	"rtub-system/internal/services"
	"rtub-system/pkg/eventbus"
)

// EmailListener queues outbound mail for events worth notifying members
// about. Only the intent is recorded here; a worker outside this process
// drains the queue.
type EmailListener struct {
	auditService services.AuditServiceInterface
	memberRepo   repositories.MemberRepositoryInterface
	logger       *zap.Logger
}

func NewEmailListener(
	auditService services.AuditServiceInterface,
	memberRepo repositories.MemberRepositoryInterface,
	logger *zap.Logger,
) *EmailListener {
	return &EmailListener{auditService: auditService, memberRepo: memberRepo, logger: logger}
}

func (l *EmailListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(domainevents.OrderPlacedName, l.onOrderPlaced)
}

func (l *EmailListener) onOrderPlaced(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(domainevents.OrderPlaced)
	if !ok {
		return nil
	}

	member, err := l.memberRepo.FindByID(ctx, nil, e.MemberID)
	if err != nil {
		return err
	}

	return l.auditService.LogEmail(ctx, entities.EmailRecord{
		RecipientID:    &e.MemberID,
		RecipientEmail: member.Email,
		Subject:        fmt.Sprintf("Order #%d received", e.OrderID),
		Body:           fmt.Sprintf("Your order #%d for %.2f was received and is pending.", e.OrderID, float64(e.TotalCents)/100),
		Kind:           "order_confirmation",
	})
}
