package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stream names shared with downstream consumers.
const (
	StatsStream     = "games.stats.football_cfb"
	ReprocessStream = "jobs.reprocess.football_cfb"
)

// RedisStreamPublisher publishes engine events to Redis streams consumed by
// the dashboard backend.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a publisher from an existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// NewRedisPublisher creates a publisher with its own connection
func NewRedisPublisher(redisURL string) (*RedisStreamPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStreamPublisher{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rsp *RedisStreamPublisher) Close() error {
	return rsp.client.Close()
}

// PublishStatsRefresh announces that a game's stat lines were written or
// replaced. Consumers re-pull the game aggregate.
func (rsp *RedisStreamPublisher) PublishStatsRefresh(ctx context.Context, payload interface{}) error {
	return rsp.publish(ctx, StatsStream, payload)
}

// PublishJobUpdate announces reprocess job lifecycle transitions.
func (rsp *RedisStreamPublisher) PublishJobUpdate(ctx context.Context, payload interface{}) error {
	return rsp.publish(ctx, ReprocessStream, payload)
}

func (rsp *RedisStreamPublisher) publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
