package application

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"

	"stayvista_service/domain"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("")

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeUserStore struct {
	users    map[string]*domain.User
	inserted int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*domain.User{}}
}

func (store *fakeUserStore) InsertIfAbsent(ctx context.Context, user *domain.User) error {
	store.inserted++
	if _, ok := store.users[user.Email]; ok {
		return nil
	}
	saved := *user
	store.users[user.Email] = &saved
	return nil
}

func (store *fakeUserStore) SetStatus(ctx context.Context, email string, status domain.UserStatus) error {
	user, ok := store.users[email]
	if !ok {
		user = &domain.User{Email: email}
		store.users[email] = user
	}
	user.Status = status
	return nil
}

func (store *fakeUserStore) UpdateRole(ctx context.Context, email string, role domain.UserRole, status domain.UserStatus) error {
	user, ok := store.users[email]
	if !ok {
		user = &domain.User{Email: email}
		store.users[email] = user
	}
	user.Role = role
	user.Status = status
	return nil
}

func (store *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return store.users[email], nil
}

func (store *fakeUserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	all := make([]*domain.User, 0, len(store.users))
	for _, user := range store.users {
		all = append(all, user)
	}
	return all, nil
}

func (store *fakeUserStore) Count(ctx context.Context) (int64, error) {
	return int64(len(store.users)), nil
}

type fakeRoomStore struct {
	rooms map[primitive.ObjectID]*domain.Room
}

func newFakeRoomStore(rooms ...*domain.Room) *fakeRoomStore {
	store := &fakeRoomStore{rooms: map[primitive.ObjectID]*domain.Room{}}
	for _, room := range rooms {
		store.rooms[room.ID] = room
	}
	return store
}

func (store *fakeRoomStore) Insert(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if room.ID.IsZero() {
		room.ID = primitive.NewObjectID()
	}
	store.rooms[room.ID] = room
	return room, nil
}

func (store *fakeRoomStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Room, error) {
	room, ok := store.rooms[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return room, nil
}

func (store *fakeRoomStore) GetAll(ctx context.Context, category string) ([]*domain.Room, error) {
	all := make([]*domain.Room, 0, len(store.rooms))
	for _, room := range store.rooms {
		if category == "" || room.Category == category {
			all = append(all, room)
		}
	}
	return all, nil
}

func (store *fakeRoomStore) GetByHost(ctx context.Context, email string) ([]*domain.Room, error) {
	var owned []*domain.Room
	for _, room := range store.rooms {
		if room.Host.Email == email {
			owned = append(owned, room)
		}
	}
	return owned, nil
}

func (store *fakeRoomStore) Update(ctx context.Context, id primitive.ObjectID, room *domain.Room) error {
	existing, ok := store.rooms[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	room.ID = id
	room.Booked = existing.Booked
	room.Host = existing.Host
	store.rooms[id] = room
	return nil
}

func (store *fakeRoomStore) SetBooked(ctx context.Context, id primitive.ObjectID, booked bool) error {
	room, ok := store.rooms[id]
	if !ok {
		return fmt.Errorf("no room %s", id.Hex())
	}
	room.Booked = booked
	return nil
}

func (store *fakeRoomStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(store.rooms, id)
	return nil
}

func (store *fakeRoomStore) Count(ctx context.Context) (int64, error) {
	return int64(len(store.rooms)), nil
}

func (store *fakeRoomStore) CountByHost(ctx context.Context, email string) (int64, error) {
	owned, _ := store.GetByHost(ctx, email)
	return int64(len(owned)), nil
}

type fakeRoomCache struct {
	entries map[string]*domain.Room
	hits    int
	puts    int
}

func newFakeRoomCache() *fakeRoomCache {
	return &fakeRoomCache{entries: map[string]*domain.Room{}}
}

func (cache *fakeRoomCache) PostCacheData(ctx context.Context, key string, room *domain.Room) error {
	cache.puts++
	cache.entries[key] = room
	return nil
}

func (cache *fakeRoomCache) GetCachedValue(ctx context.Context, key string) (*domain.Room, error) {
	room, ok := cache.entries[key]
	if !ok {
		return nil, fmt.Errorf("cache miss")
	}
	cache.hits++
	return room, nil
}

func (cache *fakeRoomCache) DelCachedValue(ctx context.Context, key string) error {
	delete(cache.entries, key)
	return nil
}

type fakeBookingStore struct {
	bookings []*domain.Booking
	rooms    *fakeRoomStore
}

func (store *fakeBookingStore) InsertWithRoomStatus(ctx context.Context, booking *domain.Booking, roomID primitive.ObjectID) (*domain.Booking, error) {
	if store.rooms != nil {
		if err := store.rooms.SetBooked(ctx, roomID, true); err != nil {
			return nil, err
		}
	}
	booking.ID = primitive.NewObjectID()
	store.bookings = append(store.bookings, booking)
	return booking, nil
}

func (store *fakeBookingStore) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	return store.bookings, nil
}

func (store *fakeBookingStore) GetByGuest(ctx context.Context, email string) ([]*domain.Booking, error) {
	var matched []*domain.Booking
	for _, booking := range store.bookings {
		if booking.Guest.Email == email {
			matched = append(matched, booking)
		}
	}
	return matched, nil
}

func (store *fakeBookingStore) GetByHost(ctx context.Context, email string) ([]*domain.Booking, error) {
	var matched []*domain.Booking
	for _, booking := range store.bookings {
		if booking.Host.Email == email {
			matched = append(matched, booking)
		}
	}
	return matched, nil
}

func (store *fakeBookingStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	for i, booking := range store.bookings {
		if booking.ID == id {
			store.bookings = append(store.bookings[:i], store.bookings[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakePublisher struct {
	events chan *domain.BookingCreatedEvent
	err    error
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{events: make(chan *domain.BookingCreatedEvent, 8)}
}

func (publisher *fakePublisher) PublishBookingCreated(ctx context.Context, event *domain.BookingCreatedEvent) error {
	publisher.events <- event
	return publisher.err
}
