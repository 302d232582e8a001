package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rtub-system/internal/entities"
	"rtub-system/pkg/eventbus"
	"rtub-system/pkg/types"
)

type stubEventRepo struct {
	enrollments []*entities.Enrollment
}

func (s *stubEventRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Event, error) {
	return &entities.Event{ID: id, Name: "Festival"}, nil
}

func (s *stubEventRepo) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Event, uint64, error) {
	return nil, 0, nil
}

func (s *stubEventRepo) Create(ctx context.Context, tx pgx.Tx, e entities.Event) (uint64, error) {
	return 1, nil
}

func (s *stubEventRepo) Update(ctx context.Context, tx pgx.Tx, id uint64, e entities.Event) error {
	return nil
}

func (s *stubEventRepo) Delete(ctx context.Context, tx pgx.Tx, id uint64) error { return nil }

func (s *stubEventRepo) Enroll(ctx context.Context, tx pgx.Tx, eventID, memberID uint64) error {
	return nil
}

func (s *stubEventRepo) Unenroll(ctx context.Context, tx pgx.Tx, eventID, memberID uint64) error {
	return nil
}

func (s *stubEventRepo) GetEnrollments(ctx context.Context, eventID uint64) ([]*entities.Enrollment, error) {
	return s.enrollments, nil
}

func strptr(s string) *string { return &s }

func enrollmentFixtures() []*entities.Enrollment {
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	return []*entities.Enrollment{
		{ID: 1, EventID: 7, MemberID: 10, EnrolledAt: base, MemberName: strptr("Carlos Mendes")},
		{ID: 2, EventID: 7, MemberID: 11, EnrolledAt: base.Add(time.Hour), MemberName: strptr("Ana Silva")},
		{ID: 3, EventID: 7, MemberID: 12, EnrolledAt: base.Add(2 * time.Hour), MemberName: strptr("Bruno Carvalho")},
	}
}

func newEnrollmentService(t *testing.T) EventServiceInterface {
	t.Helper()
	repo := &stubEventRepo{enrollments: enrollmentFixtures()}
	return NewEventService(repo, eventbus.New(zap.NewNop()), zap.NewNop())
}

func TestGetEnrollmentsSearchByMemberName(t *testing.T) {
	svc := newEnrollmentService(t)

	page, err := svc.GetEnrollments(context.Background(), 7, types.Filter{
		Search: "carv",
		Limit:  50,
		Page:   1,
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "Bruno Carvalho", *page.Items[0].MemberName)
	assert.Equal(t, 1, page.TotalItems)
}

func TestGetEnrollmentsSortByMemberName(t *testing.T) {
	svc := newEnrollmentService(t)

	page, err := svc.GetEnrollments(context.Background(), 7, types.Filter{
		Sort:  map[string]string{"member_name": "asc"},
		Limit: 50,
		Page:  1,
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, "Ana Silva", *page.Items[0].MemberName)
	assert.Equal(t, "Carlos Mendes", *page.Items[2].MemberName)

	page, err = svc.GetEnrollments(context.Background(), 7, types.Filter{
		Sort:  map[string]string{"member_name": "desc"},
		Limit: 50,
		Page:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Carlos Mendes", *page.Items[0].MemberName)
}

func TestGetEnrollmentsPaging(t *testing.T) {
	svc := newEnrollmentService(t)

	page, err := svc.GetEnrollments(context.Background(), 7, types.Filter{Limit: 2, Page: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 3, page.TotalItems)
	require.Len(t, page.Items, 1)
}
