package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"outdoor-chat/internal/domain"
)

const redisTranscriptPrefix = "chat:history:"

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisTranscriptRepository guarda cada transcript como un string JSON bajo chat:history:<id>.
// SET reemplaza el valor de forma atomica y sin expiracion.
type RedisTranscriptRepository struct {
	client redisKV
	prefix string
}

func NewRedisTranscriptRepository(client *redis.Client) *RedisTranscriptRepository {
	return &RedisTranscriptRepository{
		client: client,
		prefix: redisTranscriptPrefix,
	}
}

func (r *RedisTranscriptRepository) Load(ctx context.Context, conversationID string) (domain.Transcript, error) {
	raw, err := r.client.Get(ctx, r.prefix+conversationID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Transcript{}, nil
	}
	if err != nil {
		return nil, storeErr("redis get", err)
	}
	t, err := decodeTranscript(raw)
	if err != nil {
		return nil, storeErr("decode transcript", err)
	}
	return t, nil
}

func (r *RedisTranscriptRepository) Save(ctx context.Context, conversationID string, transcript domain.Transcript) error {
	raw, err := encodeTranscript(transcript)
	if err != nil {
		return storeErr("encode transcript", err)
	}
	if err := r.client.Set(ctx, r.prefix+conversationID, raw, 0).Err(); err != nil {
		return storeErr("redis set", err)
	}
	return nil
}
