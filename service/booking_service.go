package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"stayvista_service/domain"
	"stayvista_service/errors"
)

type BookingService struct {
	bookings  domain.BookingStore
	rooms     domain.RoomStore
	publisher domain.EventPublisher
	logger    *logrus.Logger
	tracer    trace.Tracer
}

func NewBookingService(bookings domain.BookingStore, rooms domain.RoomStore, publisher domain.EventPublisher, logger *logrus.Logger, tracer trace.Tracer) *BookingService {
	return &BookingService{
		bookings:  bookings,
		rooms:     rooms,
		publisher: publisher,
		logger:    logger,
		tracer:    tracer,
	}
}

// Create validates the room reference, persists the booking together with
// the room status flip, then dispatches notifications to host and guest.
// Notification dispatch is fire-and-forget.
func (service *BookingService) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.Create")
	defer span.End()

	roomID, err := primitive.ObjectIDFromHex(booking.RoomID)
	if err != nil {
		return nil, fmt.Errorf(errors.InvalidRoomIdError)
	}

	room, err := service.rooms.Get(ctx, roomID)
	if err != nil || room == nil {
		return nil, fmt.Errorf(errors.RoomNotFoundError)
	}

	booking.Host = domain.Party{Email: room.Host.Email}
	booking.Title = room.Title
	if booking.TransactionID == "" {
		booking.TransactionID = uuid.NewString()
	}

	saved, err := service.bookings.InsertWithRoomStatus(ctx, booking, roomID)
	if err != nil {
		return nil, err
	}

	go service.publishCreated(saved)

	return saved, nil
}

// Cancel deletes a booking by id. Deleting an absent booking is a no-op,
// not an error.
func (service *BookingService) Cancel(ctx context.Context, id string) error {
	ctx, span := service.tracer.Start(ctx, "BookingService.Cancel")
	defer span.End()

	bookingID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf(errors.InvalidBookingIdError)
	}

	deleted, err := service.bookings.Delete(ctx, bookingID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		service.logger.Infof("booking %s already deleted", id)
	}
	return nil
}

func (service *BookingService) GetByGuest(ctx context.Context, email string) ([]*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.GetByGuest")
	defer span.End()

	return service.bookings.GetByGuest(ctx, email)
}

func (service *BookingService) GetByHost(ctx context.Context, email string) ([]*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.GetByHost")
	defer span.End()

	return service.bookings.GetByHost(ctx, email)
}

func (service *BookingService) publishCreated(booking *domain.Booking) {
	event := &domain.BookingCreatedEvent{
		BookingID:  booking.ID.Hex(),
		RoomID:     booking.RoomID,
		RoomTitle:  booking.Title,
		GuestEmail: booking.Guest.Email,
		GuestName:  booking.Guest.Name,
		HostEmail:  booking.Host.Email,
		Date:       booking.Date,
		Price:      booking.Price,
	}

	if err := service.publisher.PublishBookingCreated(context.Background(), event); err != nil {
		service.logger.Errorf("failed to publish booking created event for %s: %s", event.BookingID, err)
	}
}
