package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoomStore interface {
	Insert(ctx context.Context, room *Room) (*Room, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Room, error)
	GetAll(ctx context.Context, category string) ([]*Room, error)
	GetByHost(ctx context.Context, email string) ([]*Room, error)
	Update(ctx context.Context, id primitive.ObjectID, room *Room) error
	SetBooked(ctx context.Context, id primitive.ObjectID, booked bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CountByHost(ctx context.Context, email string) (int64, error)
}

// RoomCache is a read-through cache over single room documents.
type RoomCache interface {
	PostCacheData(ctx context.Context, key string, room *Room) error
	GetCachedValue(ctx context.Context, key string) (*Room, error)
	DelCachedValue(ctx context.Context, key string) error
}
