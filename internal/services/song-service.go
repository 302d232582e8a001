package services

import (
	"context"

	"go.uber.org/zap"

	"rtub-system/internal/dto"
	"rtub-system/internal/entities"
	"rtub-system/internal/repositories"
	"rtub-system/pkg/types"
)

type SongServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*entities.Song, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Song, uint64, error)
	Create(ctx context.Context, payload dto.CreateSongDTO) (*entities.Song, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateSongDTO) (*entities.Song, error)
	Delete(ctx context.Context, id uint64) error
	SetStatus(ctx context.Context, id uint64, status string) error
}

type SongService struct {
	songRepo repositories.SongRepositoryInterface
	logger   *zap.Logger
}

func NewSongService(songRepo repositories.SongRepositoryInterface, logger *zap.Logger) SongServiceInterface {
	return &SongService{songRepo: songRepo, logger: logger}
}

func (s *SongService) GetByID(ctx context.Context, id uint64) (*entities.Song, error) {
	return s.songRepo.FindByID(ctx, id)
}

func (s *SongService) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Song, uint64, error) {
	return s.songRepo.GetAll(ctx, filter)
}

func (s *SongService) Create(ctx context.Context, payload dto.CreateSongDTO) (*entities.Song, error) {
	status := payload.Status
	if status == "" {
		status = entities.SongStatusLearning
	}

	song := entities.Song{
		Title:    payload.Title,
		Composer: payload.Composer.Ptr(),
		Arranger: payload.Arranger.Ptr(),
		Status:   status,
	}

	newID, err := s.songRepo.Create(ctx, song)
	if err != nil {
		return nil, err
	}
	return s.songRepo.FindByID(ctx, newID)
}

func (s *SongService) Update(ctx context.Context, id uint64, payload dto.UpdateSongDTO) (*entities.Song, error) {
	song, err := s.songRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Title.Valid {
		song.Title = payload.Title.String
	}
	if payload.Composer.Valid {
		song.Composer = payload.Composer.Ptr()
	}
	if payload.Arranger.Valid {
		song.Arranger = payload.Arranger.Ptr()
	}
	if payload.Status.Valid {
		song.Status = payload.Status.String
	}

	if err := s.songRepo.Update(ctx, id, *song); err != nil {
		return nil, err
	}
	return s.songRepo.FindByID(ctx, id)
}

func (s *SongService) Delete(ctx context.Context, id uint64) error {
	return s.songRepo.Delete(ctx, id)
}

func (s *SongService) SetStatus(ctx context.Context, id uint64, status string) error {
	return s.songRepo.SetStatus(ctx, id, status)
}
