package application

import (
	"context"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayvista_service/domain"
	"stayvista_service/errors"
)

func TestGetRoomReadThroughCache(t *testing.T) {
	room := &domain.Room{ID: primitive.NewObjectID(), Title: "Loft", Category: "Rooms", Price: 120}
	store := newFakeRoomStore(room)
	cache := newFakeRoomCache()
	service := NewRoomService(store, cache, testLogger(), testTracer)

	first, err := service.Get(context.Background(), room.ID.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if first.Title != "Loft" {
		t.Errorf("expected room from store, got %+v", first)
	}
	if cache.puts != 1 {
		t.Errorf("expected first read to populate cache, puts=%d", cache.puts)
	}

	// second read is served from the cache
	delete(store.rooms, room.ID)
	second, err := service.Get(context.Background(), room.ID.Hex())
	if err != nil {
		t.Fatalf("unexpected error on cached read: %s", err)
	}
	if second.Title != "Loft" || cache.hits != 1 {
		t.Errorf("expected cache hit, hits=%d room=%+v", cache.hits, second)
	}
}

func TestSetBookedInvalidatesCache(t *testing.T) {
	room := &domain.Room{ID: primitive.NewObjectID(), Title: "Loft"}
	store := newFakeRoomStore(room)
	cache := newFakeRoomCache()
	service := NewRoomService(store, cache, testLogger(), testTracer)

	if _, err := service.Get(context.Background(), room.ID.Hex()); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if err := service.SetBooked(context.Background(), room.ID.Hex(), true); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !room.Booked {
		t.Error("expected room flagged booked")
	}
	if len(cache.entries) != 0 {
		t.Error("expected cached entry to be invalidated")
	}
}

func TestGetRoomInvalidID(t *testing.T) {
	service := NewRoomService(newFakeRoomStore(), newFakeRoomCache(), testLogger(), testTracer)

	_, err := service.Get(context.Background(), "not-hex")
	if err == nil || err.Error() != errors.InvalidRoomIdError {
		t.Fatalf("expected %q, got %v", errors.InvalidRoomIdError, err)
	}
}

func TestGetRoomUnknownID(t *testing.T) {
	service := NewRoomService(newFakeRoomStore(), newFakeRoomCache(), testLogger(), testTracer)

	_, err := service.Get(context.Background(), primitive.NewObjectID().Hex())
	if err == nil || err.Error() != errors.RoomNotFoundError {
		t.Fatalf("expected %q, got %v", errors.RoomNotFoundError, err)
	}
}

func TestUpdateRoomUnknownID(t *testing.T) {
	service := NewRoomService(newFakeRoomStore(), newFakeRoomCache(), testLogger(), testTracer)

	err := service.Update(context.Background(), primitive.NewObjectID().Hex(), &domain.Room{Title: "Loft"})
	if err == nil || err.Error() != errors.RoomNotFoundError {
		t.Fatalf("expected %q, got %v", errors.RoomNotFoundError, err)
	}
}

type failingRoomStore struct {
	*fakeRoomStore
	err error
}

func (store *failingRoomStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Room, error) {
	return nil, store.err
}

func (store *failingRoomStore) Update(ctx context.Context, id primitive.ObjectID, room *domain.Room) error {
	return store.err
}

func TestRoomStoreFailureIsNotNotFound(t *testing.T) {
	storeErr := fmt.Errorf("connection reset")
	store := &failingRoomStore{fakeRoomStore: newFakeRoomStore(), err: storeErr}
	service := NewRoomService(store, newFakeRoomCache(), testLogger(), testTracer)

	id := primitive.NewObjectID().Hex()

	if err := service.Update(context.Background(), id, &domain.Room{Title: "Loft"}); err != storeErr {
		t.Errorf("expected store error passed through on update, got %v", err)
	}
	if _, err := service.Get(context.Background(), id); err != storeErr {
		t.Errorf("expected store error passed through on get, got %v", err)
	}
}
