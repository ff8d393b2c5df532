package service

import (
	"context"
	"io"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/security"
	"agrirent-backend/internal/utils"
)

// SignUpInput carries the signup form. Role-specific fields are ignored for
// the other role.
type SignUpInput struct {
	Role            domain.Role
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string

	FarmName      string
	FarmSizeAcres *float64
	FarmLocation  string
	CropTypes     string

	BusinessName    string
	PropertyAddress string
	EquipmentCount  *int32
	ServiceArea     string
}

// SignInResult is a freshly issued session.
type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	Profile   *domain.Profile
}

type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*domain.Profile, error)
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	// ProvisionUser creates an account of any role, admin included.
	ProvisionUser(ctx context.Context, in SignUpInput) (*domain.Profile, error)
	// Authenticate validates a session token and rejects signed-out ones.
	Authenticate(ctx context.Context, token string) (*security.SessionClaims, error)
	SignOut(ctx context.Context, token string) error
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	// GetProfileWithRetry re-reads a profile with bounded backoff, for reads
	// that follow a write.
	GetProfileWithRetry(ctx context.Context, userID string) (*domain.Profile, error)
}

// ImageUpload is an equipment photo as received from a multipart form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type NewEquipmentInput struct {
	Name             string
	Description      string
	Category         string
	PricePerDayCents int64
	Location         string
	Image            *ImageUpload
}

// UploadLimits describes what the equipment form accepts.
type UploadLimits struct {
	AllowedTypes []string          `json:"allowed_types"`
	MaxBytes     int64             `json:"max_bytes"`
	Categories   []domain.Category `json:"categories"`
}

type CatalogService interface {
	Browse(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error)
	GetEquipment(ctx context.Context, id string) (*domain.Equipment, error)
	ListMine(ctx context.Context, ownerID string) ([]domain.Equipment, error)
	// ToggleAvailability flips is_available and returns the owner's re-fetched list.
	ToggleAvailability(ctx context.Context, ownerID, equipmentID string) ([]domain.Equipment, error)
	AddEquipment(ctx context.Context, ownerID string, in NewEquipmentInput) (*domain.Equipment, error)
	UploadLimits() UploadLimits
}

// Checkout is everything the checkout view shows before submission.
type Checkout struct {
	Equipment *domain.Equipment `json:"equipment"`
	Owner     *domain.Profile   `json:"owner"`
	Renter    *domain.Profile   `json:"renter"`
	Quote     utils.RentalQuote `json:"quote"`
}

type BookingService interface {
	Quote(ctx context.Context, renterID, equipmentID, startDate, endDate string) (*Checkout, error)
	Create(ctx context.Context, renterID, equipmentID, startDate, endDate string) (*domain.Booking, error)
	// Get returns the booking when userID is its renter or owner.
	Get(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	ListForRenter(ctx context.Context, renterID string) ([]domain.Booking, error)
	ListForOwner(ctx context.Context, ownerID string) ([]domain.Booking, error)
	// MarkPaid sets paid/delivered and returns the owner's re-fetched bookings.
	MarkPaid(ctx context.Context, ownerID, bookingID string) ([]domain.Booking, error)
}

type DashboardService interface {
	// AdminStats never fails; a failed query contributes zero or an empty list.
	AdminStats(ctx context.Context) *domain.AdminStats
	OwnerDashboard(ctx context.Context, ownerID string) (*domain.OwnerDashboard, error)
}

type ReportService interface {
	ExportBookings(ctx context.Context, w io.Writer) error
}

type NotificationService interface {
	BookingCreated(ctx context.Context, b *domain.Booking, ownerEmail string) error
}
