package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"

	"stayvista_service/domain"
)

const ROOM_COLLECTION = "rooms"

type RoomMongoDBStore struct {
	rooms  *mongo.Collection
	tracer trace.Tracer
}

func NewRoomMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.RoomStore {
	rooms := client.Database(DATABASE).Collection(ROOM_COLLECTION)
	return &RoomMongoDBStore{
		rooms:  rooms,
		tracer: tracer,
	}
}

func (store *RoomMongoDBStore) Insert(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Insert")
	defer span.End()

	room.ID = primitive.NewObjectID()
	result, err := store.rooms.InsertOne(ctx, room)
	if err != nil {
		return nil, err
	}
	room.ID = result.InsertedID.(primitive.ObjectID)
	return room, nil
}

func (store *RoomMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Get")
	defer span.End()

	filter := bson.M{"_id": id}
	return store.filterOne(ctx, filter)
}

func (store *RoomMongoDBStore) GetAll(ctx context.Context, category string) ([]*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.GetAll")
	defer span.End()

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	return store.filter(ctx, filter)
}

func (store *RoomMongoDBStore) GetByHost(ctx context.Context, email string) ([]*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.GetByHost")
	defer span.End()

	filter := bson.M{"host.email": email}
	return store.filter(ctx, filter)
}

func (store *RoomMongoDBStore) Update(ctx context.Context, id primitive.ObjectID, room *domain.Room) error {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Update")
	defer span.End()

	updateData := bson.M{}
	if room.Title != "" {
		updateData["title"] = room.Title
	}
	if room.Location != "" {
		updateData["location"] = room.Location
	}
	if room.Category != "" {
		updateData["category"] = room.Category
	}
	if room.Image != "" {
		updateData["image"] = room.Image
	}
	if room.Price > 0 {
		updateData["price"] = room.Price
	}
	if room.TotalGuest > 0 {
		updateData["total_guest"] = room.TotalGuest
	}
	if room.Bedrooms > 0 {
		updateData["bedrooms"] = room.Bedrooms
	}
	if room.Bathrooms > 0 {
		updateData["bathrooms"] = room.Bathrooms
	}
	if room.Description != "" {
		updateData["description"] = room.Description
	}
	if room.From != "" {
		updateData["from"] = room.From
	}
	if room.To != "" {
		updateData["to"] = room.To
	}

	filter := bson.M{"_id": id}
	update := bson.M{"$set": updateData}

	result, err := store.rooms.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (store *RoomMongoDBStore) SetBooked(ctx context.Context, id primitive.ObjectID, booked bool) error {
	ctx, span := store.tracer.Start(ctx, "RoomStore.SetBooked")
	defer span.End()

	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"booked": booked}}

	_, err := store.rooms.UpdateOne(ctx, filter, update)
	return err
}

func (store *RoomMongoDBStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Delete")
	defer span.End()

	filter := bson.M{"_id": id}
	_, err := store.rooms.DeleteOne(ctx, filter)
	return err
}

func (store *RoomMongoDBStore) Count(ctx context.Context) (int64, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Count")
	defer span.End()

	return store.rooms.CountDocuments(ctx, bson.D{{}})
}

func (store *RoomMongoDBStore) CountByHost(ctx context.Context, email string) (int64, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.CountByHost")
	defer span.End()

	return store.rooms.CountDocuments(ctx, bson.M{"host.email": email})
}

func (store *RoomMongoDBStore) filter(ctx context.Context, filter interface{}) ([]*domain.Room, error) {
	cursor, err := store.rooms.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeRooms(ctx, cursor)
}

func (store *RoomMongoDBStore) filterOne(ctx context.Context, filter interface{}) (room *domain.Room, err error) {
	result := store.rooms.FindOne(ctx, filter)
	err = result.Decode(&room)
	return
}

func decodeRooms(ctx context.Context, cursor *mongo.Cursor) (rooms []*domain.Room, err error) {
	for cursor.Next(ctx) {
		var room domain.Room
		err = cursor.Decode(&room)
		if err != nil {
			return
		}
		rooms = append(rooms, &room)
	}
	err = cursor.Err()
	return
}
