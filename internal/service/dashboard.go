package service

import (
	"context"
	"fmt"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

const recentUsersLimit = 10

type dashboardService struct {
	profileRepo   repository.ProfileRepository
	equipmentRepo repository.EquipmentRepository
	bookingRepo   repository.BookingRepository
}

func NewDashboardService(profileRepo repository.ProfileRepository, equipmentRepo repository.EquipmentRepository, bookingRepo repository.BookingRepository) DashboardService {
	return &dashboardService{
		profileRepo:   profileRepo,
		equipmentRepo: equipmentRepo,
		bookingRepo:   bookingRepo,
	}
}

func (s *dashboardService) AdminStats(ctx context.Context) *domain.AdminStats {
	stats := &domain.AdminStats{RecentUsers: []domain.Profile{}}
	var g errgroup.Group

	countInto := func(name string, dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(ctx)
			if err != nil {
				logger.Error("admin stat query failed", "stat", name, "error", err)
				return nil
			}
			*dst = n
			return nil
		})
	}

	countInto("total_users", &stats.TotalUsers, s.profileRepo.Count)
	countInto("farmers", &stats.Farmers, func(ctx context.Context) (int64, error) {
		return s.profileRepo.CountByRole(ctx, domain.RoleFarmer)
	})
	countInto("owners", &stats.Owners, func(ctx context.Context) (int64, error) {
		return s.profileRepo.CountByRole(ctx, domain.RoleOwner)
	})
	countInto("bookings", &stats.Bookings, s.bookingRepo.Count)
	countInto("pending_payments", &stats.PendingPayments, func(ctx context.Context) (int64, error) {
		return s.bookingRepo.CountByPaymentStatus(ctx, domain.PaymentStatusPending)
	})
	g.Go(func() error {
		recent, err := s.profileRepo.ListRecent(ctx, recentUsersLimit)
		if err != nil {
			logger.Error("admin stat query failed", "stat", "recent_users", "error", err)
			return nil
		}
		if recent != nil {
			stats.RecentUsers = recent
		}
		return nil
	})

	_ = g.Wait()
	return stats
}

func (s *dashboardService) OwnerDashboard(ctx context.Context, ownerID string) (*domain.OwnerDashboard, error) {
	bookings, err := s.bookingRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner bookings: %w", err)
	}
	equipment, err := s.equipmentRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner equipment: %w", err)
	}
	return &domain.OwnerDashboard{Bookings: bookings, Equipment: equipment}, nil
}
