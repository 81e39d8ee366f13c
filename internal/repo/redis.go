package repo

import (
	"DMR_Link/config"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ExpiryKeyPrefix prefixes the shadow keys that mirror tracked link lifetimes.
const ExpiryKeyPrefix = "sharelink:"

// ErrLockBusy is returned when another holder owns the lock.
var ErrLockBusy = errors.New("lock is busy")

type RedisLock struct {
	rdb   *redis.Client
	key   string
	token string
	ttl   time.Duration
}

// InitRedis initializes the Redis client, or returns nil when Redis is disabled.
func InitRedis() *redis.Client {
	if !config.AppConfig.RedisEnabled {
		log.Println("redis disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.AppConfig.RedisHost, config.AppConfig.RedisPort),
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	_, err := client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("init redis fail", err)
	}
	log.Println("init redis success")
	return client
}

// EnableKeyspaceNotifications enables Redis keyspace events.
func EnableKeyspaceNotifications(ctx context.Context, rdb *redis.Client) error {
	if rdb == nil {
		return errors.New("redis not initialized")
	}
	return rdb.ConfigSet(ctx, "notify-keyspace-events", "Ex").Err()
}

// NewRedisLock creates a Redis lock helper.
func NewRedisLock(rdb *redis.Client, key string, ttl time.Duration) *RedisLock {
	return &RedisLock{
		rdb: rdb,
		key: key,
		ttl: ttl,
	}
}

// Lock acquires a Redis-based lock.
func (l *RedisLock) Lock(ctx context.Context) error {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrLockBusy
	}
	l.token = token
	return nil
}

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// Extend resets the lock TTL while the lock is still ours. It returns
// ErrLockBusy once the key expired or was taken by another holder.
func (l *RedisLock) Extend(ctx context.Context) error {
	if l.token == "" {
		return ErrLockBusy
	}
	n, err := extendScript.Run(
		ctx,
		l.rdb,
		[]string{l.key},
		l.token,
		l.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLockBusy
	}
	return nil
}

// Unlock releases a Redis-based lock.
func (l *RedisLock) Unlock(ctx context.Context) error {
	if l.token == "" {
		return nil
	}
	_, err := unlockScript.Run(
		ctx,
		l.rdb,
		[]string{l.key},
		l.token,
	).Result()
	l.token = ""
	return err
}

// RedisExpiryNotifier mirrors each tracked link with a Redis key of the same TTL.
type RedisExpiryNotifier struct {
	rdb *redis.Client
}

// NewRedisExpiryNotifier builds a notifier over rdb.
func NewRedisExpiryNotifier(rdb *redis.Client) *RedisExpiryNotifier {
	return &RedisExpiryNotifier{rdb: rdb}
}

// Schedule sets the shadow key for a link id.
func (n *RedisExpiryNotifier) Schedule(ctx context.Context, linkID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Second
	}
	return n.rdb.Set(ctx, ExpiryKeyPrefix+linkID, 1, ttl).Err()
}

// ListenRedisExpired listens for Redis expired events and hands tracked link
// ids to onLinkExpired. It returns when ctx is done.
func ListenRedisExpired(ctx context.Context, rdb *redis.Client, ready chan<- struct{}, onLinkExpired func(linkID string)) {
	channel := fmt.Sprintf("__keyevent@%d__:expired", rdb.Options().DB)
	pubsub := rdb.Subscribe(ctx, channel)
	defer pubsub.Close()

	_, err := pubsub.Receive(ctx)
	if err != nil {
		log.Printf("subscribe %s failed: %v", channel, err)
		close(ready)
		return
	}
	close(ready)
	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			handleExpiredKey(msg.Payload, onLinkExpired)
		}
	}
}

// handleExpiredKey dispatches expired-key handlers.
func handleExpiredKey(key string, onLinkExpired func(linkID string)) {
	switch {
	case strings.HasPrefix(key, ExpiryKeyPrefix):
		linkID := strings.TrimPrefix(key, ExpiryKeyPrefix)
		log.Println("sharing link expired:", linkID)
		onLinkExpired(linkID)
	default:
	}
}
