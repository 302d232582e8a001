package services

import (
	"context"

	"go.uber.org/zap"

	"rtub-system/internal/dto"
	"rtub-system/internal/entities"
	"rtub-system/internal/repositories"
	"rtub-system/pkg/types"
)

type RehearsalServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*entities.Rehearsal, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Rehearsal, uint64, error)
	Create(ctx context.Context, payload dto.CreateRehearsalDTO) (*entities.Rehearsal, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateRehearsalDTO) (*entities.Rehearsal, error)
	Delete(ctx context.Context, id uint64) error

	MarkAttendance(ctx context.Context, rehearsalID, markedBy uint64, payload dto.MarkAttendanceDTO) error
	GetAttendance(ctx context.Context, rehearsalID uint64) ([]*entities.RehearsalAttendance, error)
}

type RehearsalService struct {
	rehearsalRepo repositories.RehearsalRepositoryInterface
	logger        *zap.Logger
}

func NewRehearsalService(
	rehearsalRepo repositories.RehearsalRepositoryInterface,
	logger *zap.Logger,
) RehearsalServiceInterface {
	return &RehearsalService{rehearsalRepo: rehearsalRepo, logger: logger}
}

func (s *RehearsalService) GetByID(ctx context.Context, id uint64) (*entities.Rehearsal, error) {
	return s.rehearsalRepo.FindByID(ctx, id)
}

func (s *RehearsalService) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Rehearsal, uint64, error) {
	return s.rehearsalRepo.GetAll(ctx, filter)
}

func (s *RehearsalService) Create(ctx context.Context, payload dto.CreateRehearsalDTO) (*entities.Rehearsal, error) {
	rehearsal := entities.Rehearsal{
		Title:       payload.Title,
		Location:    payload.Location.Ptr(),
		ScheduledAt: payload.ScheduledAt,
		Notes:       payload.Notes.Ptr(),
	}

	newID, err := s.rehearsalRepo.Create(ctx, rehearsal)
	if err != nil {
		return nil, err
	}
	return s.rehearsalRepo.FindByID(ctx, newID)
}

func (s *RehearsalService) Update(ctx context.Context, id uint64, payload dto.UpdateRehearsalDTO) (*entities.Rehearsal, error) {
	rehearsal, err := s.rehearsalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Title.Valid {
		rehearsal.Title = payload.Title.String
	}
	if payload.Location.Valid {
		rehearsal.Location = payload.Location.Ptr()
	}
	if payload.ScheduledAt != nil {
		rehearsal.ScheduledAt = *payload.ScheduledAt
	}
	if payload.Notes.Valid {
		rehearsal.Notes = payload.Notes.Ptr()
	}

	if err := s.rehearsalRepo.Update(ctx, id, *rehearsal); err != nil {
		return nil, err
	}
	return s.rehearsalRepo.FindByID(ctx, id)
}

func (s *RehearsalService) Delete(ctx context.Context, id uint64) error {
	return s.rehearsalRepo.Delete(ctx, id)
}

func (s *RehearsalService) MarkAttendance(ctx context.Context, rehearsalID, markedBy uint64, payload dto.MarkAttendanceDTO) error {
	if _, err := s.rehearsalRepo.FindByID(ctx, rehearsalID); err != nil {
		return err
	}
	return s.rehearsalRepo.MarkAttendance(ctx, entities.RehearsalAttendance{
		RehearsalID: rehearsalID,
		MemberID:    payload.MemberID,
		Present:     payload.Present,
		MarkedBy:    markedBy,
	})
}

func (s *RehearsalService) GetAttendance(ctx context.Context, rehearsalID uint64) ([]*entities.RehearsalAttendance, error) {
	if _, err := s.rehearsalRepo.FindByID(ctx, rehearsalID); err != nil {
		return nil, err
	}
	return s.rehearsalRepo.GetAttendance(ctx, rehearsalID)
}
