package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDelivered BookingStatus = "delivered"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// DateLayout is the wire format of rental dates.
const DateLayout = "2006-01-02"

type Booking struct {
	ID          string `json:"id"`
	EquipmentID string `json:"equipment_id"`
	OwnerID     string `json:"owner_id"`
	RenterID    string `json:"renter_id"`

	// Snapshot fields, copied at creation time.
	EquipmentName  string `json:"equipment_name"`
	EquipmentType  string `json:"equipment_type"`
	RenterName     string `json:"renter_name"`
	RenterPhone    string `json:"renter_phone"`
	RenterLocation string `json:"renter_location"`
	OwnerName      string `json:"owner_name"`
	OwnerPhone     string `json:"owner_phone"`

	RentalStartDate string        `json:"rental_start_date"`
	RentalEndDate   string        `json:"rental_end_date"`
	TotalCostCents  int64         `json:"total_cost_cents"`
	BookingStatus   BookingStatus `json:"booking_status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// MarkPaid records cash collection. Applying it twice leaves the same state.
func (b *Booking) MarkPaid(now time.Time) {
	b.PaymentStatus = PaymentStatusPaid
	b.BookingStatus = BookingStatusDelivered
	b.UpdatedAt = now
}

// VisibleTo reports whether the user is a party to the booking.
func (b *Booking) VisibleTo(userID string) bool {
	return userID != "" && (b.RenterID == userID || b.OwnerID == userID)
}
