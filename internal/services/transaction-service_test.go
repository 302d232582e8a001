package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rtub-system/internal/dto"
	"rtub-system/internal/entities"
	"rtub-system/pkg/eventbus"
	"rtub-system/pkg/types"
)

type stubTransactionRepo struct {
	created map[uint64]entities.Transaction
	nextID  uint64
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{created: make(map[uint64]entities.Transaction)}
}

func (s *stubTransactionRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Transaction, error) {
	t := s.created[id]
	t.ID = id
	return &t, nil
}

func (s *stubTransactionRepo) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Transaction, uint64, error) {
	return nil, 0, nil
}

func (s *stubTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t entities.Transaction) (uint64, error) {
	s.nextID++
	s.created[s.nextID] = t
	return s.nextID, nil
}

func (s *stubTransactionRepo) Update(ctx context.Context, tx pgx.Tx, id uint64, t entities.Transaction) error {
	s.created[id] = t
	return nil
}

func (s *stubTransactionRepo) Delete(ctx context.Context, tx pgx.Tx, id uint64) error { return nil }

func (s *stubTransactionRepo) GetBalance(ctx context.Context) (*entities.BalanceSummary, error) {
	return &entities.BalanceSummary{}, nil
}

func TestCreateTransactionLinksEvent(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := NewTransactionService(repo, eventbus.New(zap.NewNop()), zap.NewNop())

	created, err := svc.Create(context.Background(), 3, dto.CreateTransactionDTO{
		Kind:        "income",
		AmountCents: 2500,
		Description: "festival bar takings",
		OccurredAt:  time.Date(2026, 5, 10, 22, 0, 0, 0, time.UTC),
		EventID:     null.IntFrom(42),
	})
	require.NoError(t, err)

	require.NotNil(t, created.EventID)
	assert.Equal(t, uint64(42), *created.EventID)
	assert.Equal(t, uint64(3), created.RecordedBy)
}

func TestCreateTransactionWithoutEvent(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := NewTransactionService(repo, eventbus.New(zap.NewNop()), zap.NewNop())

	created, err := svc.Create(context.Background(), 3, dto.CreateTransactionDTO{
		Kind:        "expense",
		AmountCents: 900,
		Description: "string replacements",
		OccurredAt:  time.Date(2026, 5, 11, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Nil(t, created.EventID)
}
