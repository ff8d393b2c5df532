package postgres_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestAccountRepository_CreateWithProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMock(t)
		repo := postgres.NewAccountRepository(db)

		acres := 250.0
		a := &domain.Account{ID: "u-1", Email: "ann@farm.test", PasswordHash: "hash"}
		p := &domain.Profile{FullName: "Ann", Email: "ann@farm.test", Role: domain.RoleFarmer, Phone: "555", FarmSizeAcres: &acres}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO accounts").
			WithArgs("u-1", "ann@farm.test", "hash", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO profiles (.+) ON CONFLICT \\(id\\) DO UPDATE").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateWithProfile(ctx, a, p)
		require.NoError(t, err)
		assert.Equal(t, "u-1", p.ID)
		assert.False(t, a.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db, mock := newMock(t)
		repo := postgres.NewAccountRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO accounts").
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.CreateWithProfile(ctx, &domain.Account{ID: "u-2", Email: "dup@farm.test"}, &domain.Profile{Role: domain.RoleOwner})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ProfileFailureRollsBack", func(t *testing.T) {
		db, mock := newMock(t)
		repo := postgres.NewAccountRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO accounts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO profiles").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.CreateWithProfile(ctx, &domain.Account{ID: "u-3"}, &domain.Profile{Role: domain.RoleOwner})
		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewAccountRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("u-1", "ann@farm.test", "hash", time.Now())
		mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE LOWER(email) = LOWER($1)")).
			WithArgs("ANN@farm.test").
			WillReturnRows(rows)

		a, err := repo.GetByEmail(ctx, "ANN@farm.test")
		require.NoError(t, err)
		assert.Equal(t, "u-1", a.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM accounts").WillReturnError(sql.ErrNoRows)

		a, err := repo.GetByEmail(ctx, "nobody@farm.test")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, a)
	})
}

var profileCols = []string{"id", "full_name", "email", "role", "phone", "farm_name", "farm_size_acres", "farm_location",
	"crop_types", "business_name", "property_address", "equipment_count", "service_area", "created_at", "updated_at"}

func TestProfileRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewProfileRepository(db)
	ctx := context.Background()

	t.Run("GetByID", func(t *testing.T) {
		rows := sqlmock.NewRows(profileCols).
			AddRow("u-1", "Ann", "ann@farm.test", "farmer", "555", "Green Acres", 250.0, "Ames, IA", "corn", "", "", nil, "", time.Now(), time.Now())
		mock.ExpectQuery("SELECT (.+) FROM profiles WHERE id = \\$1").WithArgs("u-1").WillReturnRows(rows)

		p, err := repo.GetByID(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleFarmer, p.Role)
		require.NotNil(t, p.FarmSizeAcres)
		assert.Equal(t, 250.0, *p.FarmSizeAcres)
		assert.Nil(t, p.EquipmentCount)
		assert.Equal(t, "Ames, IA", p.Location())
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM profiles WHERE id").WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("CountByRole", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM profiles WHERE role = $1")).
			WithArgs("owner").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		n, err := repo.CountByRole(ctx, domain.RoleOwner)
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
	})

	t.Run("ListRecent", func(t *testing.T) {
		rows := sqlmock.NewRows(profileCols).
			AddRow("u-2", "Bob", "bob@farm.test", "owner", "", "", nil, "", "", "Bob's Rigs", "1 Main St", 3, "", time.Now(), time.Now()).
			AddRow("u-1", "Ann", "ann@farm.test", "farmer", "", "", nil, "", "", "", "", nil, "", time.Now(), time.Now())
		mock.ExpectQuery("FROM profiles ORDER BY created_at DESC LIMIT \\$1").WithArgs(5).WillReturnRows(rows)

		list, err := repo.ListRecent(ctx, 5)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.NotNil(t, list[0].EquipmentCount)
		assert.Equal(t, int32(3), *list[0].EquipmentCount)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

var equipmentCols = []string{"id", "owner_id", "name", "description", "category", "price_per_day_cents", "location",
	"image_url", "is_available", "created_at", "updated_at"}

func TestEquipmentRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		e := &domain.Equipment{ID: "e-1", OwnerID: "o-1", Name: "Deere 5075E", Category: domain.CategoryTractor,
			PricePerDayCents: 15000, Location: "Ames, IA", IsAvailable: true}
		mock.ExpectExec("INSERT INTO equipment").
			WithArgs("e-1", "o-1", "Deere 5075E", "", "Tractor", int64(15000), "Ames, IA", nil, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, e))
		assert.False(t, e.CreatedAt.IsZero())
	})

	t.Run("ListAvailable", func(t *testing.T) {
		img := "http://localhost/uploads/a.png"
		rows := sqlmock.NewRows(equipmentCols).
			AddRow("e-2", "o-1", "Combine", "big", "Harvester", 40000, "Ames", img, true, time.Now(), time.Now()).
			AddRow("e-1", "o-1", "Tractor", "", "Tractor", 15000, "Ames", nil, true, time.Now(), time.Now())
		mock.ExpectQuery("FROM equipment WHERE is_available = TRUE ORDER BY created_at DESC").WillReturnRows(rows)

		items, err := repo.ListAvailable(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		require.NotNil(t, items[0].ImageURL)
		assert.Equal(t, img, *items[0].ImageURL)
		assert.Nil(t, items[1].ImageURL)
	})

	t.Run("SetAvailability", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET is_available = \\$1").
			WithArgs(false, sqlmock.AnyArg(), "e-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetAvailability(ctx, "e-1", false))
	})

	t.Run("SetAvailabilityMissing", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment").
			WithArgs(true, sqlmock.AnyArg(), "nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetAvailability(ctx, "nope", true), domain.ErrNotFound)
	})

	t.Run("MalformedIDIsNotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM equipment WHERE id = \\$1").
			WithArgs("not-a-uuid").
			WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})

		_, err := repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		mock.ExpectExec("UPDATE equipment").
			WithArgs(true, sqlmock.AnyArg(), "not-a-uuid").
			WillReturnError(&pq.Error{Code: "22P02"})

		assert.ErrorIs(t, repo.SetAvailability(ctx, "not-a-uuid", true), domain.ErrNotFound)
	})

	t.Run("OtherDriverErrorsPassThrough", func(t *testing.T) {
		mock.ExpectQuery("FROM equipment WHERE id = \\$1").
			WithArgs("e-9").
			WillReturnError(&pq.Error{Code: "57014"})

		_, err := repo.GetByID(ctx, "e-9")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ListImageURLs", func(t *testing.T) {
		mock.ExpectQuery("SELECT image_url FROM equipment WHERE image_url IS NOT NULL").
			WillReturnRows(sqlmock.NewRows([]string{"image_url"}).AddRow("a").AddRow("b"))

		urls, err := repo.ListImageURLs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, urls)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

var bookingCols = []string{"id", "equipment_id", "owner_id", "renter_id", "equipment_name", "equipment_type", "renter_name",
	"renter_phone", "renter_location", "owner_name", "owner_phone", "rental_start_date", "rental_end_date",
	"total_cost_cents", "booking_status", "payment_status", "created_at", "updated_at"}

func TestBookingRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		b := &domain.Booking{ID: "b-1", EquipmentID: "e-1", OwnerID: "o-1", RenterID: "r-1",
			RentalStartDate: "2026-05-01", RentalEndDate: "2026-05-04", TotalCostCents: 45000,
			BookingStatus: domain.BookingStatusConfirmed, PaymentStatus: domain.PaymentStatusPending}
		mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, b))
	})

	t.Run("ListByOwner", func(t *testing.T) {
		rows := sqlmock.NewRows(bookingCols).
			AddRow("b-1", "e-1", "o-1", "r-1", "Tractor", "Tractor", "Ann", "555", "Ames", "Bob", "666",
				"2026-05-01", "2026-05-04", 45000, "confirmed", "pending", time.Now(), time.Now())
		mock.ExpectQuery("FROM bookings WHERE owner_id = \\$1").WithArgs("o-1").WillReturnRows(rows)

		list, err := repo.ListByOwner(ctx, "o-1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "2026-05-01", list[0].RentalStartDate)
		assert.Equal(t, domain.PaymentStatusPending, list[0].PaymentStatus)
	})

	t.Run("MarkPaid", func(t *testing.T) {
		at := time.Now()
		mock.ExpectExec("UPDATE bookings SET payment_status = \\$1, booking_status = \\$2").
			WithArgs("paid", "delivered", at, "b-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkPaid(ctx, "b-1", at))
	})

	t.Run("CountPending", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE payment_status = $1")).
			WithArgs("pending").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		n, err := repo.CountByPaymentStatus(ctx, domain.PaymentStatusPending)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM bookings WHERE id").WithArgs("b-x").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, "b-x")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySchema(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS accounts").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, postgres.ApplySchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
