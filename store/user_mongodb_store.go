package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/trace"

	"stayvista_service/domain"
)

const (
	DATABASE        = "stayvista"
	USER_COLLECTION = "users"
)

type UserMongoDBStore struct {
	users  *mongo.Collection
	tracer trace.Tracer
}

func NewUserMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.UserStore {
	users := client.Database(DATABASE).Collection(USER_COLLECTION)
	return &UserMongoDBStore{
		users:  users,
		tracer: tracer,
	}
}

func (store *UserMongoDBStore) InsertIfAbsent(ctx context.Context, user *domain.User) error {
	ctx, span := store.tracer.Start(ctx, "UserStore.InsertIfAbsent")
	defer span.End()

	filter := bson.M{"email": user.Email}
	update := bson.M{"$setOnInsert": bson.M{
		"name":      user.Name,
		"image":     user.Image,
		"email":     user.Email,
		"role":      user.Role,
		"status":    user.Status,
		"timestamp": user.Timestamp,
	}}
	opts := options.Update().SetUpsert(true)

	_, err := store.users.UpdateOne(ctx, filter, update, opts)
	return err
}

func (store *UserMongoDBStore) SetStatus(ctx context.Context, email string, status domain.UserStatus) error {
	ctx, span := store.tracer.Start(ctx, "UserStore.SetStatus")
	defer span.End()

	filter := bson.M{"email": email}
	update := bson.M{"$set": bson.M{"status": status}}
	opts := options.Update().SetUpsert(true)

	_, err := store.users.UpdateOne(ctx, filter, update, opts)
	return err
}

func (store *UserMongoDBStore) UpdateRole(ctx context.Context, email string, role domain.UserRole, status domain.UserStatus) error {
	ctx, span := store.tracer.Start(ctx, "UserStore.UpdateRole")
	defer span.End()

	filter := bson.M{"email": email}
	update := bson.M{"$set": bson.M{"role": role, "status": status}}

	_, err := store.users.UpdateOne(ctx, filter, update)
	return err
}

func (store *UserMongoDBStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.GetByEmail")
	defer span.End()

	filter := bson.M{"email": email}
	return store.filterOne(ctx, filter)
}

func (store *UserMongoDBStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.GetAll")
	defer span.End()

	filter := bson.D{{}}
	return store.filter(ctx, filter)
}

func (store *UserMongoDBStore) Count(ctx context.Context) (int64, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.Count")
	defer span.End()

	return store.users.CountDocuments(ctx, bson.D{{}})
}

func (store *UserMongoDBStore) filter(ctx context.Context, filter interface{}) ([]*domain.User, error) {
	cursor, err := store.users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeUsers(ctx, cursor)
}

func (store *UserMongoDBStore) filterOne(ctx context.Context, filter interface{}) (user *domain.User, err error) {
	result := store.users.FindOne(ctx, filter)
	err = result.Decode(&user)
	return
}

func decodeUsers(ctx context.Context, cursor *mongo.Cursor) (users []*domain.User, err error) {
	for cursor.Next(ctx) {
		var user domain.User
		err = cursor.Decode(&user)
		if err != nil {
			return
		}
		users = append(users, &user)
	}
	err = cursor.Err()
	return
}
