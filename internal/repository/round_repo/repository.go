package round_repo

import (
	"arcade_backend/internal/model"
	"arcade_backend/internal/repository"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldData    = "data"
	fieldVersion = "version"
)

// Скрипт сохранения с проверкой версии. ARGV[2] == 0 - новый раунд,
// старое состояние перезаписывается. Иначе запись проходит только
// если версия в хранилище совпала с ожидаемой
var saveScript = redis.NewScript(`
local v = redis.call('HGET', KEYS[1], 'version')
if ARGV[2] == '0' then
  redis.call('HSET', KEYS[1], 'data', ARGV[1], 'version', 1)
  redis.call('PEXPIRE', KEYS[1], ARGV[3])
  return 1
end
if not v or v ~= ARGV[2] then
  return 0
end
redis.call('HSET', KEYS[1], 'data', ARGV[1], 'version', v + 1)
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

type repo struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRoundRepository - round store поверх Redis.
// ttl ограничивает жизнь брошенных раундов
func NewRoundRepository(rdb *redis.Client, ttl time.Duration) repository.RoundRepository {
	return &repo{
		rdb: rdb,
		ttl: ttl,
	}
}

func roundKey(userID int, gameKey string) string {
	return fmt.Sprintf("round:%s:%d", gameKey, userID)
}

// Load - загрузка сериализованного состояния раунда с его версией
func (r *repo) Load(ctx context.Context, userID int, gameKey string) (*model.StoredRound, error) {
	vals, err := r.rdb.HMGet(ctx, roundKey(userID, gameKey), fieldData, fieldVersion).Result()
	if err != nil {
		return nil, err
	}
	if vals[0] == nil || vals[1] == nil {
		return nil, model.ErrNoRound
	}

	data, ok := vals[0].(string)
	if !ok {
		return nil, model.ErrNoRound
	}

	var version int64
	if _, err := fmt.Sscanf(vals[1].(string), "%d", &version); err != nil {
		return nil, fmt.Errorf("corrupt round version: %w", err)
	}

	return &model.StoredRound{
		Data:    []byte(data),
		Version: version,
	}, nil
}

// Save - сохранение состояния. Версионная проверка сериализует
// конкурентные действия одной сессии: проигравший запрос получает
// model.ErrRoundConflict и не меняет состояние
func (r *repo) Save(ctx context.Context, userID int, gameKey string, data []byte, expectedVersion int64) error {
	ok, err := saveScript.Run(
		ctx,
		r.rdb,
		[]string{roundKey(userID, gameKey)},
		data,
		expectedVersion,
		r.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return err
	}
	if ok != 1 {
		return model.ErrRoundConflict
	}

	return nil
}

// Clear - удаляет состояние раунда
func (r *repo) Clear(ctx context.Context, userID int, gameKey string) error {
	return r.rdb.Del(ctx, roundKey(userID, gameKey)).Err()
}
