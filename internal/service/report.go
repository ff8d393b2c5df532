package service

import (
	"context"
	"fmt"
	"io"

	"agrirent-backend/internal/repository"

	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

var bookingsHeader = []any{
	"Booking ID", "Equipment", "Type", "Renter", "Renter Phone", "Renter Location",
	"Owner", "Owner Phone", "Start", "End", "Total", "Status", "Payment", "Created",
}

type reportService struct {
	bookingRepo repository.BookingRepository
}

func NewReportService(bookingRepo repository.BookingRepository) ReportService {
	return &reportService{bookingRepo: bookingRepo}
}

// ExportBookings writes every booking, newest first, as an XLSX workbook.
func (s *reportService) ExportBookings(ctx context.Context, w io.Writer) error {
	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(bookingsSheet, "A1", &bookingsHeader); err != nil {
		return err
	}
	for i, b := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			b.ID, b.EquipmentName, b.EquipmentType, b.RenterName, b.RenterPhone, b.RenterLocation,
			b.OwnerName, b.OwnerPhone, b.RentalStartDate, b.RentalEndDate,
			float64(b.TotalCostCents) / 100, string(b.BookingStatus), string(b.PaymentStatus),
			b.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(bookingsSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(bookingsSheet, "A", "N", 18); err != nil {
		return err
	}
	return f.Write(w)
}
