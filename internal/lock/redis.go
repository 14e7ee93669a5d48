package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a lease held under a single key. The TTL bounds how long a crashed
// holder can block other replicas.
type Redis struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration

	mu    sync.Mutex
	token string
}

func NewRedis(client redis.Cmdable, key string, ttl time.Duration) *Redis {
	return &Redis{client: client, key: key, ttl: ttl}
}

func (r *Redis) TryLock(ctx context.Context) (bool, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, r.key, token, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire %s: %w", r.key, err)
	}
	if !ok {
		return false, nil
	}
	r.mu.Lock()
	r.token = token
	r.mu.Unlock()
	return true, nil
}

// Unlock deletes the key only if it still holds this replica's token.
func (r *Redis) Unlock(ctx context.Context) error {
	r.mu.Lock()
	token := r.token
	r.token = ""
	r.mu.Unlock()
	if token == "" {
		return nil
	}
	if err := releaseScript.Run(ctx, r.client, []string{r.key}, token).Err(); err != nil {
		return fmt.Errorf("release %s: %w", r.key, err)
	}
	return nil
}
