package services

import (
	"context"

	"go.uber.org/zap"

	"rtub-system/internal/dto"
	"rtub-system/internal/entities"
	"rtub-system/internal/repositories"
	"rtub-system/pkg/types"
)

type InventoryServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*entities.InventoryItem, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.InventoryItem, uint64, error)
	Create(ctx context.Context, payload dto.CreateInventoryItemDTO) (*entities.InventoryItem, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateInventoryItemDTO) (*entities.InventoryItem, error)
	Delete(ctx context.Context, id uint64) error
	AssignHolder(ctx context.Context, id uint64, holderID *uint64) error
}

type InventoryService struct {
	inventoryRepo repositories.InventoryRepositoryInterface
	logger        *zap.Logger
}

func NewInventoryService(
	inventoryRepo repositories.InventoryRepositoryInterface,
	logger *zap.Logger,
) InventoryServiceInterface {
	return &InventoryService{inventoryRepo: inventoryRepo, logger: logger}
}

func (s *InventoryService) GetByID(ctx context.Context, id uint64) (*entities.InventoryItem, error) {
	return s.inventoryRepo.FindByID(ctx, id)
}

func (s *InventoryService) GetAll(ctx context.Context, filter types.Filter) ([]*entities.InventoryItem, uint64, error) {
	return s.inventoryRepo.GetAll(ctx, filter)
}

func (s *InventoryService) Create(ctx context.Context, payload dto.CreateInventoryItemDTO) (*entities.InventoryItem, error) {
	item := entities.InventoryItem{
		Name:         payload.Name,
		Kind:         payload.Kind,
		SerialNumber: payload.SerialNumber.Ptr(),
		Condition:    payload.Condition.Ptr(),
		HolderID:     payload.HolderID.Ptr(),
		Notes:        payload.Notes.Ptr(),
	}

	newID, err := s.inventoryRepo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	return s.inventoryRepo.FindByID(ctx, newID)
}

func (s *InventoryService) Update(ctx context.Context, id uint64, payload dto.UpdateInventoryItemDTO) (*entities.InventoryItem, error) {
	item, err := s.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid {
		item.Name = payload.Name.String
	}
	if payload.Kind.Valid {
		item.Kind = payload.Kind.String
	}
	if payload.SerialNumber.Valid {
		item.SerialNumber = payload.SerialNumber.Ptr()
	}
	if payload.Condition.Valid {
		item.Condition = payload.Condition.Ptr()
	}
	if payload.Notes.Valid {
		item.Notes = payload.Notes.Ptr()
	}

	if err := s.inventoryRepo.Update(ctx, id, *item); err != nil {
		return nil, err
	}

	if payload.HolderID.Valid {
		if err := s.inventoryRepo.AssignHolder(ctx, id, payload.HolderID.Ptr()); err != nil {
			return nil, err
		}
	}
	return s.inventoryRepo.FindByID(ctx, id)
}

func (s *InventoryService) Delete(ctx context.Context, id uint64) error {
	return s.inventoryRepo.Delete(ctx, id)
}

func (s *InventoryService) AssignHolder(ctx context.Context, id uint64, holderID *uint64) error {
	return s.inventoryRepo.AssignHolder(ctx, id, holderID)
}
