package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stayvista_service/domain"
)

const roomCacheTTL = 10 * time.Minute

type RoomRedisCache struct {
	client *redis.Client
	tracer trace.Tracer
}

func NewRoomRedisCache(client *redis.Client, tracer trace.Tracer) domain.RoomCache {
	return &RoomRedisCache{
		client: client,
		tracer: tracer,
	}
}

func (c *RoomRedisCache) PostCacheData(ctx context.Context, key string, room *domain.Room) error {
	ctx, span := c.tracer.Start(ctx, "RoomRedisCache.PostCacheData")
	defer span.End()

	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	result := c.client.Set(key, data, roomCacheTTL)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error posting cached value")
		log.Printf("redis set error: %s", result.Err())
		return result.Err()
	}

	return nil
}

func (c *RoomRedisCache) GetCachedValue(ctx context.Context, key string) (*domain.Room, error) {
	ctx, span := c.tracer.Start(ctx, "RoomRedisCache.GetCachedValue")
	defer span.End()

	result := c.client.Get(key)
	data, err := result.Result()
	if err != nil {
		return nil, err
	}

	var room domain.Room
	if err := json.Unmarshal([]byte(data), &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *RoomRedisCache) DelCachedValue(ctx context.Context, key string) error {
	ctx, span := c.tracer.Start(ctx, "RoomRedisCache.DelCachedValue")
	defer span.End()

	result := c.client.Del(key)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error deleting cached value")
		log.Println(result.Err())
		return result.Err()
	}

	return nil
}
