package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"

	"stayvista_service/domain"
)

const BOOKING_COLLECTION = "bookings"

type BookingMongoDBStore struct {
	client   *mongo.Client
	bookings *mongo.Collection
	rooms    *mongo.Collection
	tracer   trace.Tracer
}

func NewBookingMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.BookingStore {
	db := client.Database(DATABASE)
	return &BookingMongoDBStore{
		client:   client,
		bookings: db.Collection(BOOKING_COLLECTION),
		rooms:    db.Collection(ROOM_COLLECTION),
		tracer:   tracer,
	}
}

func (store *BookingMongoDBStore) InsertWithRoomStatus(ctx context.Context, booking *domain.Booking, roomID primitive.ObjectID) (*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.InsertWithRoomStatus")
	defer span.End()

	session, err := store.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	booking.ID = primitive.NewObjectID()

	// Booking insert and room flag flip succeed or fail together.
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := store.bookings.InsertOne(sessCtx, booking); err != nil {
			return nil, err
		}
		filter := bson.M{"_id": roomID}
		update := bson.M{"$set": bson.M{"booked": true}}
		if _, err := store.rooms.UpdateOne(sessCtx, filter, update); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func (store *BookingMongoDBStore) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetAll")
	defer span.End()

	return store.filter(ctx, bson.D{{}})
}

func (store *BookingMongoDBStore) GetByGuest(ctx context.Context, email string) ([]*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetByGuest")
	defer span.End()

	return store.filter(ctx, bson.M{"guest.email": email})
}

func (store *BookingMongoDBStore) GetByHost(ctx context.Context, email string) ([]*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetByHost")
	defer span.End()

	return store.filter(ctx, bson.M{"host.email": email})
}

func (store *BookingMongoDBStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Delete")
	defer span.End()

	result, err := store.bookings.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (store *BookingMongoDBStore) filter(ctx context.Context, filter interface{}) ([]*domain.Booking, error) {
	cursor, err := store.bookings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeBookings(ctx, cursor)
}

func decodeBookings(ctx context.Context, cursor *mongo.Cursor) (bookings []*domain.Booking, err error) {
	for cursor.Next(ctx) {
		var booking domain.Booking
		err = cursor.Decode(&booking)
		if err != nil {
			return
		}
		bookings = append(bookings, &booking)
	}
	err = cursor.Err()
	return
}
