package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrirent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	svc       *bookingService
	bookings  *MockBookingRepo
	equipment *MockEquipmentRepo
	profiles  *MockProfileRepo
	notifier  *MockNotifier
}

var fixedNow = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings:  new(MockBookingRepo),
		equipment: new(MockEquipmentRepo),
		profiles:  new(MockProfileRepo),
		notifier:  new(MockNotifier),
	}
	f.svc = NewBookingService(f.bookings, f.equipment, f.profiles, f.notifier).(*bookingService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *bookingFixture) stockDefaults(available bool) {
	f.equipment.On("GetByID", mock.Anything, "e-1").Return(&domain.Equipment{
		ID: "e-1", OwnerID: "o-1", Name: "Kubota M7", Category: domain.CategoryTractor,
		PricePerDayCents: 15000, IsAvailable: available,
	}, nil)
	f.profiles.On("GetByID", mock.Anything, "o-1").Return(&domain.Profile{
		ID: "o-1", FullName: "Olive Owner", Email: "olive@rigs.test", Phone: "555-0200", Role: domain.RoleOwner,
	}, nil)
	f.profiles.On("GetByID", mock.Anything, "r-1").Return(&domain.Profile{
		ID: "r-1", FullName: "Ann Field", Phone: "555-0100", Role: domain.RoleFarmer, PropertyAddress: "", FarmLocation: "Ames, IA",
	}, nil)
}

func TestBookingService_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultRangeIsOneDay", func(t *testing.T) {
		f := newBookingFixture()
		f.stockDefaults(true)

		co, err := f.svc.Quote(ctx, "r-1", "e-1", "", "")
		require.NoError(t, err)
		assert.Equal(t, "2026-05-01", co.Quote.StartDate)
		assert.Equal(t, "2026-05-02", co.Quote.EndDate)
		assert.Equal(t, int64(1), co.Quote.Days)
		assert.Equal(t, int64(15000), co.Quote.TotalCostCents)
		assert.Equal(t, "Olive Owner", co.Owner.FullName)
	})

	t.Run("MissingEquipment", func(t *testing.T) {
		f := newBookingFixture()
		f.equipment.On("GetByID", mock.Anything, "gone").Return(nil, domain.ErrNotFound)

		_, err := f.svc.Quote(ctx, "r-1", "gone", "", "")
		assert.ErrorIs(t, err, domain.ErrBookingUnavailable)
	})

	t.Run("MissingRenterProfile", func(t *testing.T) {
		f := newBookingFixture()
		f.stockDefaults(true)
		f.profiles.On("GetByID", mock.Anything, "r-x").Return(nil, domain.ErrNotFound)

		_, err := f.svc.Quote(ctx, "r-x", "e-1", "", "")
		assert.ErrorIs(t, err, domain.ErrBookingUnavailable)
	})
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("SnapshotsContactsAndPrices", func(t *testing.T) {
		f := newBookingFixture()
		f.stockDefaults(true)
		f.bookings.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.TotalCostCents == 45000 &&
				b.BookingStatus == domain.BookingStatusConfirmed &&
				b.PaymentStatus == domain.PaymentStatusPending &&
				b.RenterName == "Ann Field" && b.RenterLocation == "Ames, IA" &&
				b.OwnerName == "Olive Owner" && b.OwnerPhone == "555-0200" &&
				b.EquipmentType == "Tractor" && b.OwnerID == "o-1" && b.RenterID == "r-1"
		})).Return(nil)
		f.notifier.On("BookingCreated", ctx, mock.Anything, "olive@rigs.test").Return(nil)

		b, err := f.svc.Create(ctx, "r-1", "e-1", "2026-05-01", "2026-05-04")
		require.NoError(t, err)
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, "2026-05-04", b.RentalEndDate)
		f.bookings.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("NotificationFailureIsIgnored", func(t *testing.T) {
		f := newBookingFixture()
		f.stockDefaults(true)
		f.bookings.On("Create", ctx, mock.Anything).Return(nil)
		f.notifier.On("BookingCreated", ctx, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		_, err := f.svc.Create(ctx, "r-1", "e-1", "2026-05-01", "2026-05-02")
		assert.NoError(t, err)
	})

	t.Run("EndNotAfterStart", func(t *testing.T) {
		f := newBookingFixture()
		f.stockDefaults(true)

		_, err := f.svc.Create(ctx, "r-1", "e-1", "2026-05-04", "2026-05-04")
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
		assert.True(t, domain.IsValidation(err))
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("UnavailableEquipment", func(t *testing.T) {
		f := newBookingFixture()
		f.stockDefaults(false)

		_, err := f.svc.Create(ctx, "r-1", "e-1", "2026-05-01", "2026-05-02")
		assert.ErrorIs(t, err, domain.ErrEquipmentUnavailable)
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MissingEquipmentID", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.svc.Create(ctx, "r-1", "", "2026-05-01", "2026-05-02")
		assert.True(t, domain.IsValidation(err))
	})
}

func TestBookingService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	booking := func() *domain.Booking {
		return &domain.Booking{ID: "b-1", OwnerID: "o-1", RenterID: "r-1",
			BookingStatus: domain.BookingStatusConfirmed, PaymentStatus: domain.PaymentStatusPending}
	}

	t.Run("OwnerMarksPaidTwice", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("GetByID", ctx, "b-1").Return(booking(), nil)
		f.bookings.On("MarkPaid", ctx, "b-1", fixedNow).Return(nil)
		f.bookings.On("ListByOwner", ctx, "o-1").Return([]domain.Booking{{ID: "b-1",
			BookingStatus: domain.BookingStatusDelivered, PaymentStatus: domain.PaymentStatusPaid}}, nil)

		for i := 0; i < 2; i++ {
			list, err := f.svc.MarkPaid(ctx, "o-1", "b-1")
			require.NoError(t, err)
			assert.Equal(t, domain.PaymentStatusPaid, list[0].PaymentStatus)
			assert.Equal(t, domain.BookingStatusDelivered, list[0].BookingStatus)
		}
		f.bookings.AssertNumberOfCalls(t, "MarkPaid", 2)
	})

	t.Run("NotTheOwner", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("GetByID", ctx, "b-1").Return(booking(), nil)

		_, err := f.svc.MarkPaid(ctx, "o-2", "b-1")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.bookings.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookingService_Get(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	f.bookings.On("GetByID", ctx, "b-1").Return(&domain.Booking{ID: "b-1", OwnerID: "o-1", RenterID: "r-1"}, nil)

	for _, user := range []string{"o-1", "r-1"} {
		b, err := f.svc.Get(ctx, user, "b-1")
		require.NoError(t, err)
		assert.Equal(t, "b-1", b.ID)
	}

	_, err := f.svc.Get(ctx, "stranger", "b-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
