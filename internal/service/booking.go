package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository"
	"agrirent-backend/internal/utils"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo   repository.BookingRepository
	equipmentRepo repository.EquipmentRepository
	profileRepo   repository.ProfileRepository
	notifier      NotificationService
	now           func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	equipmentRepo repository.EquipmentRepository,
	profileRepo repository.ProfileRepository,
	notifier NotificationService,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		profileRepo:   profileRepo,
		notifier:      notifier,
		now:           time.Now,
	}
}

// load fetches the equipment and both profiles. A missing record turns into
// ErrBookingUnavailable.
func (s *bookingService) load(ctx context.Context, renterID, equipmentID string) (*domain.Equipment, *domain.Profile, *domain.Profile, error) {
	unavailable := func(err error) error {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrBookingUnavailable
		}
		return err
	}

	e, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, nil, nil, unavailable(err)
	}
	owner, err := s.profileRepo.GetByID(ctx, e.OwnerID)
	if err != nil {
		return nil, nil, nil, unavailable(err)
	}
	renter, err := s.profileRepo.GetByID(ctx, renterID)
	if err != nil {
		return nil, nil, nil, unavailable(err)
	}
	return e, owner, renter, nil
}

func (s *bookingService) Quote(ctx context.Context, renterID, equipmentID, startDate, endDate string) (*Checkout, error) {
	if equipmentID == "" {
		return nil, domain.ErrBookingUnavailable
	}
	e, owner, renter, err := s.load(ctx, renterID, equipmentID)
	if err != nil {
		return nil, err
	}
	quote, err := utils.QuoteDates(startDate, endDate, e.PricePerDayCents, s.now())
	if err != nil {
		return nil, err
	}
	return &Checkout{Equipment: e, Owner: owner, Renter: renter, Quote: quote}, nil
}

func (s *bookingService) Create(ctx context.Context, renterID, equipmentID, startDate, endDate string) (*domain.Booking, error) {
	if equipmentID == "" {
		return nil, domain.NewValidationError("equipment_id", "Equipment is required")
	}
	e, owner, renter, err := s.load(ctx, renterID, equipmentID)
	if err != nil {
		return nil, err
	}
	quote, err := utils.QuoteDates(startDate, endDate, e.PricePerDayCents, s.now())
	if err != nil {
		return nil, err
	}
	if !e.IsAvailable {
		return nil, domain.ErrEquipmentUnavailable
	}

	b := &domain.Booking{
		ID:              uuid.NewString(),
		EquipmentID:     e.ID,
		OwnerID:         e.OwnerID,
		RenterID:        renter.ID,
		EquipmentName:   e.Name,
		EquipmentType:   string(e.Category),
		RenterName:      renter.FullName,
		RenterPhone:     renter.Phone,
		RenterLocation:  renter.Location(),
		OwnerName:       owner.FullName,
		OwnerPhone:      owner.Phone,
		RentalStartDate: quote.StartDate,
		RentalEndDate:   quote.EndDate,
		TotalCostCents:  quote.TotalCostCents,
		BookingStatus:   domain.BookingStatusConfirmed,
		PaymentStatus:   domain.PaymentStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	logger.Info("booking created", "booking_id", b.ID, "equipment_id", e.ID, "days", quote.Days, "total_cents", b.TotalCostCents)

	if err := s.notifier.BookingCreated(ctx, b, owner.Email); err != nil {
		logger.Warn("booking notification failed", "booking_id", b.ID, "error", err)
	}
	return b, nil
}

func (s *bookingService) Get(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.VisibleTo(userID) {
		// indistinguishable from a missing booking
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *bookingService) ListForRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID)
}

func (s *bookingService) ListForOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID)
}

func (s *bookingService) MarkPaid(ctx context.Context, ownerID, bookingID string) ([]domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	b.MarkPaid(s.now().UTC())
	if err := s.bookingRepo.MarkPaid(ctx, b.ID, b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}
	logger.Info("booking marked paid", "booking_id", b.ID, "owner_id", ownerID)
	return s.bookingRepo.ListByOwner(ctx, ownerID)
}
