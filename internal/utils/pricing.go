package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"agrirent-backend/internal/domain"
)

const day = 24 * time.Hour

// RentalQuote is the priced form of a date range for one piece of equipment.
type RentalQuote struct {
	StartDate        string `json:"rental_start_date"`
	EndDate          string `json:"rental_end_date"`
	Days             int64  `json:"duration_days"`
	PricePerDayCents int64  `json:"price_per_day_cents"`
	TotalCostCents   int64  `json:"total_cost_cents"`
}

// ParseDate converts a yyyy-mm-dd string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t, nil
}

// DefaultRange is the checkout's initial selection: today through tomorrow.
func DefaultRange(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.Add(day)
}

// RentalDays returns ceil((end - start) / 1 day) with a floor of one day.
// The end must be strictly after the start.
func RentalDays(start, end time.Time) (int64, error) {
	if !end.After(start) {
		return 0, domain.ErrInvalidDateRange
	}
	diff := end.Sub(start)
	days := int64(diff / day)
	if diff%day != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days, nil
}

// CalculateRentalCost prices a range at a flat daily rate.
func CalculateRentalCost(start, end time.Time, pricePerDayCents int64) (RentalQuote, error) {
	if pricePerDayCents <= 0 {
		return RentalQuote{}, domain.NewValidationError("price_per_day", "price per day must be positive")
	}
	days, err := RentalDays(start, end)
	if err != nil {
		return RentalQuote{}, err
	}
	if days > math.MaxInt64/pricePerDayCents {
		return RentalQuote{}, domain.NewValidationError("end_date", "rental period is too long for this price")
	}
	return RentalQuote{
		StartDate:        start.Format(domain.DateLayout),
		EndDate:          end.Format(domain.DateLayout),
		Days:             days,
		PricePerDayCents: pricePerDayCents,
		TotalCostCents:   pricePerDayCents * days,
	}, nil
}

// QuoteDates parses both dates and prices them. Empty strings fall back to DefaultRange.
func QuoteDates(startStr, endStr string, pricePerDayCents int64, now time.Time) (RentalQuote, error) {
	start, end := DefaultRange(now)
	var err error
	if strings.TrimSpace(startStr) != "" {
		if start, err = ParseDate(startStr); err != nil {
			return RentalQuote{}, domain.NewValidationError("start_date", err.Error())
		}
	}
	if strings.TrimSpace(endStr) != "" {
		if end, err = ParseDate(endStr); err != nil {
			return RentalQuote{}, domain.NewValidationError("end_date", err.Error())
		}
	}
	return CalculateRentalCost(start, end, pricePerDayCents)
}
