package service

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository"
	"agrirent-backend/internal/storage"

	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type catalogService struct {
	equipmentRepo repository.EquipmentRepository
	store         storage.ObjectStore
	allowedTypes  []string
	maxImageBytes int64
}

func NewCatalogService(equipmentRepo repository.EquipmentRepository, store storage.ObjectStore, allowedTypes []string, maxImageBytes int64) CatalogService {
	return &catalogService{
		equipmentRepo: equipmentRepo,
		store:         store,
		allowedTypes:  allowedTypes,
		maxImageBytes: maxImageBytes,
	}
}

func (s *catalogService) Browse(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	items, err := s.equipmentRepo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return filter.Apply(items), nil
}

func (s *catalogService) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *catalogService) ListMine(ctx context.Context, ownerID string) ([]domain.Equipment, error) {
	return s.equipmentRepo.ListByOwner(ctx, ownerID)
}

func (s *catalogService) ToggleAvailability(ctx context.Context, ownerID, equipmentID string) ([]domain.Equipment, error) {
	e, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if err := s.equipmentRepo.SetAvailability(ctx, e.ID, !e.IsAvailable); err != nil {
		return nil, fmt.Errorf("toggle availability: %w", err)
	}
	logger.Info("equipment availability changed", "equipment_id", e.ID, "available", !e.IsAvailable)
	return s.equipmentRepo.ListByOwner(ctx, ownerID)
}

func (s *catalogService) UploadLimits() UploadLimits {
	return UploadLimits{
		AllowedTypes: s.allowedTypes,
		MaxBytes:     s.maxImageBytes,
		Categories:   domain.Categories,
	}
}

func (s *catalogService) validate(in *NewEquipmentInput) (domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" {
		return "", domain.NewValidationError("name", "Equipment name is required")
	}
	category, ok := domain.ParseCategory(in.Category)
	if !ok {
		return "", domain.NewValidationError("category", "Please select a valid category")
	}
	if in.PricePerDayCents <= 0 {
		return "", domain.NewValidationError("price_per_day", "Price per day must be greater than zero")
	}
	if in.PricePerDayCents > domain.MaxPricePerDayCents {
		return "", domain.NewValidationError("price_per_day", "Price per day must be at most 1000000.00")
	}
	if in.Location == "" {
		return "", domain.NewValidationError("location", "Location is required")
	}
	if in.Image == nil || in.Image.Content == nil {
		return "", domain.NewValidationError("image", "Please upload an equipment image")
	}
	if !slices.Contains(s.allowedTypes, in.Image.ContentType) {
		return "", domain.NewValidationError("image", "Please upload a valid image file (JPEG, PNG, WebP, or GIF)")
	}
	if in.Image.Size > s.maxImageBytes {
		return "", domain.NewValidationError("image", fmt.Sprintf("Image must be smaller than %dMB", s.maxImageBytes>>20))
	}
	return category, nil
}

// AddEquipment uploads the image first and inserts the row second. When the
// insert fails the uploaded object is removed; the orphan sweep catches any
// removal that fails here.
func (s *catalogService) AddEquipment(ctx context.Context, ownerID string, in NewEquipmentInput) (*domain.Equipment, error) {
	category, err := s.validate(&in)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	key := fmt.Sprintf("equipment/%s/%s%s", ownerID, id, imageExtensions[in.Image.ContentType])
	content := io.LimitReader(in.Image.Content, s.maxImageBytes+1)
	if err := s.store.Put(ctx, key, in.Image.ContentType, content); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	imageURL := s.store.PublicURL(key)

	e := &domain.Equipment{
		ID:               id,
		OwnerID:          ownerID,
		Name:             in.Name,
		Description:      in.Description,
		Category:         category,
		PricePerDayCents: in.PricePerDayCents,
		Location:         in.Location,
		ImageURL:         &imageURL,
		IsAvailable:      true,
	}
	if err := s.equipmentRepo.Create(ctx, e); err != nil {
		if derr := s.store.Delete(ctx, key); derr != nil {
			logger.Warn("failed to remove image after insert failure", "key", key, "error", derr)
		}
		return nil, fmt.Errorf("create equipment: %w", err)
	}
	logger.Info("equipment listed", "equipment_id", e.ID, "owner_id", ownerID)
	return e, nil
}
