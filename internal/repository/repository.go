package repository

import (
	"context"
	"time"

	"agrirent-backend/internal/domain"
)

// AccountRepository is the auth subsystem's credential store.
type AccountRepository interface {
	// CreateWithProfile writes the account and its full profile atomically.
	// The profile write is an upsert keyed by account id.
	CreateWithProfile(ctx context.Context, account *domain.Account, profile *domain.Profile) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Profile, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	// ListAvailable returns available equipment, newest first.
	ListAvailable(ctx context.Context) ([]domain.Equipment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Equipment, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	ListImageURLs(ctx context.Context) ([]string, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	MarkPaid(ctx context.Context, id string, at time.Time) error
	Count(ctx context.Context) (int64, error)
	CountByPaymentStatus(ctx context.Context, status domain.PaymentStatus) (int64, error)
}
