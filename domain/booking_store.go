package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStore interface {
	// InsertWithRoomStatus persists the booking and flips the referenced
	// room to booked in a single transaction, so no observer sees one
	// write without the other.
	InsertWithRoomStatus(ctx context.Context, booking *Booking, roomID primitive.ObjectID) (*Booking, error)
	GetAll(ctx context.Context) ([]*Booking, error)
	GetByGuest(ctx context.Context, email string) ([]*Booking, error)
	GetByHost(ctx context.Context, email string) ([]*Booking, error)
	// Delete reports how many documents were removed; deleting an absent
	// booking is not an error.
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// EventPublisher dispatches domain events decoupled from the request
// lifecycle. Publish failures are logged by callers, never surfaced.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event *BookingCreatedEvent) error
}
