package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"rtub-system/internal/dto"
	"rtub-system/internal/entities"
	domainevents "rtub-system/internal/events"
	"rtub-system/internal/repositories"
	"rtub-system/pkg/eventbus"
	"rtub-system/pkg/types"
)

type TransactionServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*entities.Transaction, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Transaction, uint64, error)
	Create(ctx context.Context, recordedBy uint64, payload dto.CreateTransactionDTO) (*entities.Transaction, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateTransactionDTO) (*entities.Transaction, error)
	Delete(ctx context.Context, id uint64) error
	GetBalance(ctx context.Context) (*entities.BalanceSummary, error)
}

type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	bus             *eventbus.Bus
	logger          *zap.Logger
}

func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) TransactionServiceInterface {
	return &TransactionService{transactionRepo: transactionRepo, bus: bus, logger: logger}
}

func eventIDFromNull(n null.Int) *uint64 {
	if !n.Valid {
		return nil
	}
	id := uint64(n.Int)
	return &id
}

func (s *TransactionService) GetByID(ctx context.Context, id uint64) (*entities.Transaction, error) {
	return s.transactionRepo.FindByID(ctx, nil, id)
}

func (s *TransactionService) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Transaction, uint64, error) {
	return s.transactionRepo.GetAll(ctx, filter)
}

func (s *TransactionService) Create(ctx context.Context, recordedBy uint64, payload dto.CreateTransactionDTO) (*entities.Transaction, error) {
	transaction := entities.Transaction{
		Kind:        payload.Kind,
		AmountCents: payload.AmountCents,
		Description: payload.Description,
		OccurredAt:  payload.OccurredAt,
		RecordedBy:  recordedBy,
		EventID:     eventIDFromNull(payload.EventID),
	}

	newID, err := s.transactionRepo.Create(ctx, nil, transaction)
	if err != nil {
		return nil, err
	}

	s.logger.Info("transaction recorded",
		zap.Uint64("transaction_id", newID),
		zap.String("kind", payload.Kind),
		zap.Int64("amount_cents", payload.AmountCents),
	)

	s.bus.Publish(ctx, domainevents.TransactionRecorded{
		TransactionID: newID,
		ActorID:       recordedBy,
		Kind:          payload.Kind,
		AmountCents:   payload.AmountCents,
	})

	return s.transactionRepo.FindByID(ctx, nil, newID)
}

func (s *TransactionService) Update(ctx context.Context, id uint64, payload dto.UpdateTransactionDTO) (*entities.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	if payload.Kind.Valid {
		transaction.Kind = payload.Kind.String
	}
	if payload.AmountCents != nil {
		transaction.AmountCents = *payload.AmountCents
	}
	if payload.Description.Valid {
		transaction.Description = payload.Description.String
	}
	if payload.OccurredAt != nil {
		transaction.OccurredAt = *payload.OccurredAt
	}
	if payload.EventID.Valid {
		transaction.EventID = eventIDFromNull(payload.EventID)
	}

	if err := s.transactionRepo.Update(ctx, nil, id, *transaction); err != nil {
		return nil, err
	}
	return s.transactionRepo.FindByID(ctx, nil, id)
}

func (s *TransactionService) Delete(ctx context.Context, id uint64) error {
	return s.transactionRepo.Delete(ctx, nil, id)
}

func (s *TransactionService) GetBalance(ctx context.Context) (*entities.BalanceSummary, error) {
	return s.transactionRepo.GetBalance(ctx)
}
