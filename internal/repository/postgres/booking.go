package postgres

import (
	"context"
	"database/sql"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, equipment_id, owner_id, renter_id, equipment_name, equipment_type, renter_name, renter_phone,
	renter_location, owner_name, owner_phone, TO_CHAR(rental_start_date, 'YYYY-MM-DD'), TO_CHAR(rental_end_date, 'YYYY-MM-DD'),
	total_cost_cents, booking_status, payment_status, created_at, updated_at`

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.EquipmentID, &b.OwnerID, &b.RenterID, &b.EquipmentName, &b.EquipmentType, &b.RenterName,
		&b.RenterPhone, &b.RenterLocation, &b.OwnerName, &b.OwnerPhone, &b.RentalStartDate, &b.RentalEndDate,
		&b.TotalCostCents, &b.BookingStatus, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	logger.StoreCall("bookings", "Create", "equipment_id", b.EquipmentID, "renter_id", b.RenterID)
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	query := `INSERT INTO bookings (id, equipment_id, owner_id, renter_id, equipment_name, equipment_type, renter_name, renter_phone,
	          renter_location, owner_name, owner_phone, rental_start_date, rental_end_date, total_cost_cents, booking_status,
	          payment_status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.db.ExecContext(ctx, query, b.ID, b.EquipmentID, b.OwnerID, b.RenterID, b.EquipmentName, b.EquipmentType,
		b.RenterName, b.RenterPhone, b.RenterLocation, b.OwnerName, b.OwnerPhone, b.RentalStartDate, b.RentalEndDate,
		b.TotalCostCents, b.BookingStatus, b.PaymentStatus, b.CreatedAt, b.UpdatedAt)
	logger.StoreResult("bookings", "Create", err, "id", b.ID)
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE renter_id = $1 ORDER BY created_at DESC`, renterID)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// MarkPaid sets payment to paid and the booking to delivered. Repeating it is harmless.
func (r *bookingRepository) MarkPaid(ctx context.Context, id string, at time.Time) error {
	logger.StoreCall("bookings", "MarkPaid", "id", id)
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET payment_status = $1, booking_status = $2, updated_at = $3 WHERE id = $4`,
		domain.PaymentStatusPaid, domain.BookingStatusDelivered, at, id)
	if err != nil {
		logger.StoreResult("bookings", "MarkPaid", err, "id", id)
		return notFound(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM bookings`)
}

func (r *bookingRepository) CountByPaymentStatus(ctx context.Context, status domain.PaymentStatus) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM bookings WHERE payment_status = $1`, status)
}
