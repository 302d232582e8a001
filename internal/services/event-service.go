package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rtub-system/internal/dto"
	"rtub-system/internal/entities"
	domainevents "rtub-system/internal/events"
	"rtub-system/internal/repositories"
	"rtub-system/pkg/eventbus"
	"rtub-system/pkg/tables"
	"rtub-system/pkg/types"
)

type EventServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*entities.Event, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Event, uint64, error)
	Create(ctx context.Context, creatorID uint64, payload dto.CreateEventDTO) (*entities.Event, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateEventDTO) (*entities.Event, error)
	Delete(ctx context.Context, id uint64) error

	Enroll(ctx context.Context, eventID, memberID uint64) error
	Unenroll(ctx context.Context, eventID, memberID uint64) error
	GetEnrollments(ctx context.Context, eventID uint64, filter types.Filter) (tables.Page[*entities.Enrollment], error)
}

type EventService struct {
	eventRepo repositories.EventRepositoryInterface
	bus       *eventbus.Bus
	logger    *zap.Logger
}

func NewEventService(
	eventRepo repositories.EventRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) EventServiceInterface {
	return &EventService{eventRepo: eventRepo, bus: bus, logger: logger}
}

func (s *EventService) GetByID(ctx context.Context, id uint64) (*entities.Event, error) {
	return s.eventRepo.FindByID(ctx, nil, id)
}

func (s *EventService) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Event, uint64, error) {
	return s.eventRepo.GetAll(ctx, filter)
}

func (s *EventService) Create(ctx context.Context, creatorID uint64, payload dto.CreateEventDTO) (*entities.Event, error) {
	event := entities.Event{
		Name:        payload.Name,
		Description: payload.Description.Ptr(),
		Location:    payload.Location.Ptr(),
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
		CreatorID:   creatorID,
	}

	newID, err := s.eventRepo.Create(ctx, nil, event)
	if err != nil {
		return nil, err
	}

	s.logger.Info("event created", zap.Uint64("event_id", newID), zap.String("name", payload.Name))

	s.bus.Publish(ctx, domainevents.EventCreated{
		EventID:   newID,
		ActorID:   creatorID,
		EventName: payload.Name,
		StartDate: payload.StartDate,
	})

	return s.eventRepo.FindByID(ctx, nil, newID)
}

func (s *EventService) Update(ctx context.Context, id uint64, payload dto.UpdateEventDTO) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid {
		event.Name = payload.Name.String
	}
	if payload.Description.Valid {
		event.Description = payload.Description.Ptr()
	}
	if payload.Location.Valid {
		event.Location = payload.Location.Ptr()
	}
	if payload.StartDate != nil {
		event.StartDate = *payload.StartDate
	}
	if payload.EndDate != nil {
		event.EndDate = payload.EndDate
	}

	if err := s.eventRepo.Update(ctx, nil, id, *event); err != nil {
		return nil, err
	}
	return s.eventRepo.FindByID(ctx, nil, id)
}

func (s *EventService) Delete(ctx context.Context, id uint64) error {
	return s.eventRepo.Delete(ctx, nil, id)
}

func (s *EventService) Enroll(ctx context.Context, eventID, memberID uint64) error {
	if _, err := s.eventRepo.FindByID(ctx, nil, eventID); err != nil {
		return err
	}
	if err := s.eventRepo.Enroll(ctx, nil, eventID, memberID); err != nil {
		return err
	}
	s.bus.Publish(ctx, domainevents.EnrollmentChanged{EventID: eventID, MemberID: memberID, Enrolled: true})
	return nil
}

func (s *EventService) Unenroll(ctx context.Context, eventID, memberID uint64) error {
	if err := s.eventRepo.Unenroll(ctx, nil, eventID, memberID); err != nil {
		return err
	}
	s.bus.Publish(ctx, domainevents.EnrollmentChanged{EventID: eventID, MemberID: memberID, Enrolled: false})
	return nil
}

// GetEnrollments returns the enrollment roster for an event as an in-memory
// table view: the repository joins member names, search/sort/paging happen
// here.
func (s *EventService) GetEnrollments(ctx context.Context, eventID uint64, filter types.Filter) (tables.Page[*entities.Enrollment], error) {
	enrollments, err := s.eventRepo.GetEnrollments(ctx, eventID)
	if err != nil {
		return tables.Page[*entities.Enrollment]{}, err
	}

	table := tables.New(enrollments).
		WithSearchFields(func(e *entities.Enrollment) string {
			if e.MemberName == nil {
				return ""
			}
			return *e.MemberName
		}).
		WithSortKey("member_name", func(e *entities.Enrollment) string {
			if e.MemberName == nil {
				return ""
			}
			return *e.MemberName
		}).
		WithSortKey("enrolled_at", func(e *entities.Enrollment) string {
			return e.EnrolledAt.Format(time.RFC3339)
		})

	if filter.Search != "" {
		table.Search(filter.Search)
	}
	for column, direction := range filter.Sort {
		table.SortBy(column)
		if direction == "desc" {
			table.SortBy(column)
		}
		break
	}
	table.ChangePageSize(filter.Limit).GoToPage(filter.Page)

	return table.Build(), nil
}
