package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"

	"stayvista_service/domain"
	"stayvista_service/errors"
)

type RoomService struct {
	store  domain.RoomStore
	cache  domain.RoomCache
	logger *logrus.Logger
	tracer trace.Tracer
}

func NewRoomService(store domain.RoomStore, cache domain.RoomCache, logger *logrus.Logger, tracer trace.Tracer) *RoomService {
	return &RoomService{
		store:  store,
		cache:  cache,
		logger: logger,
		tracer: tracer,
	}
}

func (service *RoomService) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	ctx, span := service.tracer.Start(ctx, "RoomService.Create")
	defer span.End()

	return service.store.Insert(ctx, room)
}

func (service *RoomService) Get(ctx context.Context, id string) (*domain.Room, error) {
	ctx, span := service.tracer.Start(ctx, "RoomService.Get")
	defer span.End()

	roomID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf(errors.InvalidRoomIdError)
	}

	if cached, err := service.cache.GetCachedValue(ctx, roomCacheKey(id)); err == nil && cached != nil {
		return cached, nil
	}

	room, err := service.store.Get(ctx, roomID)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf(errors.RoomNotFoundError)
	}
	if err != nil {
		return nil, err
	}

	if err := service.cache.PostCacheData(ctx, roomCacheKey(id), room); err != nil {
		service.logger.Warnf("failed to cache room %s: %s", id, err)
	}

	return room, nil
}

func (service *RoomService) GetAll(ctx context.Context, category string) ([]*domain.Room, error) {
	ctx, span := service.tracer.Start(ctx, "RoomService.GetAll")
	defer span.End()

	return service.store.GetAll(ctx, category)
}

func (service *RoomService) GetByHost(ctx context.Context, email string) ([]*domain.Room, error) {
	ctx, span := service.tracer.Start(ctx, "RoomService.GetByHost")
	defer span.End()

	return service.store.GetByHost(ctx, email)
}

func (service *RoomService) Update(ctx context.Context, id string, room *domain.Room) error {
	ctx, span := service.tracer.Start(ctx, "RoomService.Update")
	defer span.End()

	roomID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf(errors.InvalidRoomIdError)
	}

	if err := service.store.Update(ctx, roomID, room); err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf(errors.RoomNotFoundError)
		}
		return err
	}

	service.invalidate(ctx, id)
	return nil
}

// SetBooked is an idempotent flag flip, any boolean may follow any other.
func (service *RoomService) SetBooked(ctx context.Context, id string, booked bool) error {
	ctx, span := service.tracer.Start(ctx, "RoomService.SetBooked")
	defer span.End()

	roomID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf(errors.InvalidRoomIdError)
	}

	if err := service.store.SetBooked(ctx, roomID, booked); err != nil {
		return err
	}

	service.invalidate(ctx, id)
	return nil
}

func (service *RoomService) Delete(ctx context.Context, id string) error {
	ctx, span := service.tracer.Start(ctx, "RoomService.Delete")
	defer span.End()

	roomID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf(errors.InvalidRoomIdError)
	}

	if err := service.store.Delete(ctx, roomID); err != nil {
		return err
	}

	service.invalidate(ctx, id)
	return nil
}

func (service *RoomService) invalidate(ctx context.Context, id string) {
	if err := service.cache.DelCachedValue(ctx, roomCacheKey(id)); err != nil {
		service.logger.Warnf("failed to invalidate cached room %s: %s", id, err)
	}
}

func roomCacheKey(id string) string {
	return "room:" + id
}
