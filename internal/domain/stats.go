package domain

// AdminStats backs the admin dashboard. Counts that failed to load are reported as zero.
type AdminStats struct {
	TotalUsers      int64     `json:"total_users"`
	Farmers         int64     `json:"farmers"`
	Owners          int64     `json:"owners"`
	Bookings        int64     `json:"bookings"`
	PendingPayments int64     `json:"pending_payments"`
	RecentUsers     []Profile `json:"recent_users"`
}

// OwnerDashboard is the owner's two-tab view.
type OwnerDashboard struct {
	Bookings  []Booking   `json:"bookings"`
	Equipment []Equipment `json:"equipment"`
}
