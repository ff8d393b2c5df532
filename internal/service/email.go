package service

import (
	"context"
	"fmt"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// mailSender is the part of the SendGrid client the notifier uses.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridNotifier struct {
	client    mailSender
	fromEmail string
	fromName  string
}

// NewNotificationService returns a SendGrid notifier, or a logging notifier
// when apiKey is empty.
func NewNotificationService(apiKey, fromEmail, fromName string) NotificationService {
	if apiKey == "" {
		return logNotifier{}
	}
	return &sendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func bookingEmail(b *domain.Booking) (subject, plain, html string) {
	subject = fmt.Sprintf("New booking: %s", b.EquipmentName)
	total := fmt.Sprintf("%d.%02d", b.TotalCostCents/100, b.TotalCostCents%100)
	plain = fmt.Sprintf("%s booked your %s from %s to %s.\nTotal due on delivery: %s\nRenter phone: %s\nRenter location: %s",
		b.RenterName, b.EquipmentName, b.RentalStartDate, b.RentalEndDate, total, b.RenterPhone, b.RenterLocation)
	html = fmt.Sprintf(`<p><strong>%s</strong> booked your <strong>%s</strong> from %s to %s.</p>
<p>Total due on delivery: %s</p>
<p>Renter phone: %s<br>Renter location: %s</p>`,
		b.RenterName, b.EquipmentName, b.RentalStartDate, b.RentalEndDate, total, b.RenterPhone, b.RenterLocation)
	return subject, plain, html
}

func (n *sendGridNotifier) BookingCreated(ctx context.Context, b *domain.Booking, ownerEmail string) error {
	if ownerEmail == "" {
		return nil
	}
	subject, plain, html := bookingEmail(b)
	message := mail.NewSingleEmail(
		mail.NewEmail(n.fromName, n.fromEmail),
		subject,
		mail.NewEmail(b.OwnerName, ownerEmail),
		plain,
		html,
	)

	response, err := n.client.SendWithContext(ctx, message)
	logger.ExternalServiceResult("sendgrid", "BookingCreated", err, "booking_id", b.ID)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

type logNotifier struct{}

func (logNotifier) BookingCreated(ctx context.Context, b *domain.Booking, ownerEmail string) error {
	logger.Info("booking notification (email disabled)", "booking_id", b.ID, "owner_email", ownerEmail)
	return nil
}
