package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/trace"

	"stayvista_service/domain"
)

type StatsService struct {
	bookings domain.BookingStore
	rooms    domain.RoomStore
	users    domain.UserStore
	tracer   trace.Tracer
}

func NewStatsService(bookings domain.BookingStore, rooms domain.RoomStore, users domain.UserStore, tracer trace.Tracer) *StatsService {
	return &StatsService{
		bookings: bookings,
		rooms:    rooms,
		users:    users,
		tracer:   tracer,
	}
}

func (service *StatsService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	ctx, span := service.tracer.Start(ctx, "StatsService.AdminStats")
	defer span.End()

	bookings, err := service.bookings.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	totalUsers, err := service.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRooms, err := service.rooms.Count(ctx)
	if err != nil {
		return nil, err
	}

	total, chart := aggregateSales(bookings, "Sales")

	return &domain.AdminStats{
		TotalSales:    total,
		TotalBookings: len(bookings),
		TotalUsers:    totalUsers,
		TotalRooms:    totalRooms,
		ChartData:     chart,
	}, nil
}

func (service *StatsService) HostStats(ctx context.Context, email string) (*domain.HostStats, error) {
	ctx, span := service.tracer.Start(ctx, "StatsService.HostStats")
	defer span.End()

	bookings, err := service.bookings.GetByHost(ctx, email)
	if err != nil {
		return nil, err
	}

	totalRooms, err := service.rooms.CountByHost(ctx, email)
	if err != nil {
		return nil, err
	}

	host, err := service.users.GetByEmail(ctx, email)
	if err != nil || host == nil {
		return nil, fmt.Errorf("host %s not found", email)
	}

	total, chart := aggregateSales(bookings, "Sales")

	return &domain.HostStats{
		TotalSales:    total,
		TotalBookings: len(bookings),
		TotalRooms:    totalRooms,
		HostSince:     host.Timestamp,
		ChartData:     chart,
	}, nil
}

func (service *StatsService) GuestStats(ctx context.Context, email string) (*domain.GuestStats, error) {
	ctx, span := service.tracer.Start(ctx, "StatsService.GuestStats")
	defer span.End()

	bookings, err := service.bookings.GetByGuest(ctx, email)
	if err != nil {
		return nil, err
	}

	guest, err := service.users.GetByEmail(ctx, email)
	if err != nil || guest == nil {
		return nil, fmt.Errorf("guest %s not found", email)
	}

	total, chart := aggregateSales(bookings, "Spent")

	return &domain.GuestStats{
		TotalSpent:    total,
		TotalBookings: len(bookings),
		GuestSince:    guest.Timestamp,
		ChartData:     chart,
	}, nil
}

// aggregateSales reduces dated bookings into a grand total and per-day
// chart rows. Days are the date portion of the booking timestamp, rows
// come out chronologically after the ["Day", label] header.
func aggregateSales(bookings []*domain.Booking, label string) (float64, []domain.ChartRow) {
	total := 0.0
	dailyTotal := make(map[time.Time]float64)

	for _, booking := range bookings {
		total += booking.Price

		year, month, day := booking.Date.Date()
		bucket := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		dailyTotal[bucket] += booking.Price
	}

	days := make([]time.Time, 0, len(dailyTotal))
	for day := range dailyTotal {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	chart := []domain.ChartRow{{"Day", label}}
	for _, day := range days {
		row := fmt.Sprintf("%d/%d", day.Day(), int(day.Month()))
		chart = append(chart, domain.ChartRow{row, dailyTotal[day]})
	}

	return total, chart
}
