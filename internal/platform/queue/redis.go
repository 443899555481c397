package queue

import (
	"context"
	"log"

	"codearena/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// JudgeQueue carries submission IDs from intake to the judge worker.
// Enqueue must never block on grading; Dequeue blocks until an ID is
// available or ctx is done.
type JudgeQueue interface {
	Enqueue(ctx context.Context, submissionID string) error
	Dequeue(ctx context.Context) (string, error)
}

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	if _, err := RDB.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
	}
}

// RedisQueue backs JudgeQueue with a Redis list (LPUSH producer,
// BRPOP consumer).
type RedisQueue struct {
	rdb  *redis.Client
	name string
}

func NewRedisQueue(rdb *redis.Client, name string) *RedisQueue {
	return &RedisQueue{rdb: rdb, name: name}
}

func (q *RedisQueue) Enqueue(ctx context.Context, submissionID string) error {
	return q.rdb.LPush(ctx, q.name, submissionID).Err()
}

func (q *RedisQueue) Dequeue(ctx context.Context) (string, error) {
	res, err := q.rdb.BRPop(ctx, 0, q.name).Result()
	if err != nil {
		return "", err
	}
	// BRPop returns [queueName, value].
	if len(res) < 2 {
		return "", nil
	}
	return res[1], nil
}
