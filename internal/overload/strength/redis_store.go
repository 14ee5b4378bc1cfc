package strength

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	redisHistoryKeyPrefix   = "overload||strength||history||"
	redisExercisesKeyPrefix = "overload||strength||exercises||"
	redisDefaultMaxRetries  = 50
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps each history in a redis list of JSON records, and the set of
// exercises per user next to it. Appends use optimistic WATCH/MULTI transactions
// on the history list and retry on conflict.
type RedisStore struct {
	client     *redis.Client
	maxRetries int
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:     client,
		maxRetries: redisDefaultMaxRetries,
	}
}

func historyKey(key Key) string {
	return redisHistoryKeyPrefix + key.UserID + "||" + key.ExerciseID
}

func exercisesKey(userID string) string {
	return redisExercisesKeyPrefix + userID
}

func (s *RedisStore) Append(ctx context.Context, key Key, build BuildFunc) (Record, error) {
	listKey := historyKey(key)

	var appended Record
	txf := func(tx *redis.Tx) error {
		raw, err := tx.LRange(ctx, listKey, 0, -1).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		history, err := decodeRecords(raw)
		if err != nil {
			return err
		}

		rec, err := build(history)
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}

		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, listKey, encoded)
			pipe.SAdd(ctx, exercisesKey(key.UserID), key.ExerciseID)
			return nil
		}); err != nil {
			return err
		}

		appended = rec
		return nil
	}

	for i := 0; i < s.maxRetries; i++ {
		err := s.client.Watch(ctx, txf, listKey)
		if err == nil {
			return appended, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			log.Tracef("redis store: conflict on [%s], retry %d", listKey, i+1)
			continue
		}
		return Record{}, err
	}

	return Record{}, ErrTooManyConflicts
}

func (s *RedisStore) History(ctx context.Context, key Key) ([]Record, error) {
	raw, err := s.client.LRange(ctx, historyKey(key), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	return decodeRecords(raw)
}

func (s *RedisStore) UserRecords(ctx context.Context, userID string) ([]Record, error) {
	exerciseIDs, err := s.client.SMembers(ctx, exercisesKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	records := make([]Record, 0)
	for _, exerciseID := range exerciseIDs {
		history, err := s.History(ctx, Key{UserID: userID, ExerciseID: exerciseID})
		if err != nil {
			return nil, fmt.Errorf("history of [%s]: %w", exerciseID, err)
		}
		records = append(records, history...)
	}
	return records, nil
}

func decodeRecords(raw []string) ([]Record, error) {
	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		var rec Record
		if err := json.Unmarshal([]byte(r), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
