package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"strconv"
	"time"

	"github.com/botpanel/botpanel/internal/configuration"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// refreshLockScript extends the lock TTL only when the caller still owns it.
var refreshLockScript = rueidis.NewLuaScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("EXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

type RueidisCache struct {
	client rueidis.Client
}

func newRueidisCache(
	hosts []string,
	password string,
	tlsEnabled bool,
	tlsServerName,
	flavor string,
) (*RueidisCache, error) {
	option := rueidis.ClientOption{
		InitAddress: hosts,
		Password:    password,
	}

	if tlsEnabled {
		option.TLSConfig = &tls.Config{
			ServerName: tlsServerName,
			MinVersion: tls.VersionTLS12,
		}
	}

	client, err := rueidis.NewClient(option)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", flavor, err)
	}
	return &RueidisCache{client: client}, nil
}

func (r *RueidisCache) RegisterPlatform(id string) error {
	now := float64(time.Now().Unix())
	cmd := r.client.B().Zadd().
		Key(configuration.CacheAppIdentityKey).
		ScoreMember().ScoreMember(now, id).
		Build()
	return r.client.Do(context.Background(), cmd).Error()
}

func (r *RueidisCache) DeleteInactivePlatform() error {
	cutoff := time.Now().Unix() - configuration.CacheMaxAppIdentityLifetime
	cmd := r.client.B().Zremrangebyscore().
		Key(configuration.CacheAppIdentityKey).
		Min("-inf").
		Max(strconv.FormatInt(cutoff, 10)).
		Build()
	return r.client.Do(context.Background(), cmd).Error()
}

func (r *RueidisCache) StartIdentityTicker(id string) {
	refresh := func() {
		if err := r.RegisterPlatform(id); err != nil {
			zap.L().Fatal("Failed to register instance identity", zap.String("instance", id), zap.Error(err))
		}
		if err := r.DeleteInactivePlatform(); err != nil {
			zap.L().Fatal("Failed to prune inactive instances", zap.String("instance", id), zap.Error(err))
		}
	}

	refresh()

	ticker := time.NewTicker(configuration.CacheIdentityRefresh * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		refresh()
	}
}

func (r *RueidisCache) GetRateLimit(clientIdentifier string, requestsPerMinute int) (int, error) {
	ctx := context.Background()
	key := fmt.Sprintf(configuration.CacheAppRateLimitKey, clientIdentifier)

	results := r.client.DoMulti(ctx,
		r.client.B().Incr().Key(key).Build(),
		r.client.B().Ttl().Key(key).Build(),
	)

	count, err := results[0].AsInt64()
	if err != nil {
		return 0, err
	}
	ttl, err := results[1].AsInt64()
	if err != nil {
		return 0, err
	}

	// A key without expiry (-1) was just created by INCR.
	if ttl < 0 {
		ttl = configuration.CacheRateLimitWindow
		err = r.client.Do(ctx, r.client.B().Expire().Key(key).Seconds(ttl).Build()).Error()
		if err != nil {
			return 0, err
		}
	}

	if count > int64(requestsPerMinute) {
		return int(ttl), nil
	}
	return 0, nil
}

// TryAcquireLock takes the lock with SET NX EX. It returns false when another instance holds it.
func (r *RueidisCache) TryAcquireLock(key string, instanceID string, ttlSeconds int) (bool, error) {
	cmd := r.client.B().Set().Key(key).Value(instanceID).Nx().Ex(time.Duration(ttlSeconds) * time.Second).Build()
	err := r.client.Do(context.Background(), cmd).Error()
	if rueidis.IsRedisNil(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RefreshLock extends the lock TTL. It returns false once the lock expired or changed owner.
func (r *RueidisCache) RefreshLock(key string, instanceID string, ttlSeconds int) (bool, error) {
	refreshed, err := refreshLockScript.Exec(
		context.Background(),
		r.client,
		[]string{key},
		[]string{instanceID, strconv.Itoa(ttlSeconds)},
	).AsInt64()
	if err != nil {
		return false, err
	}
	return refreshed == 1, nil
}

func (r *RueidisCache) Close() error {
	r.client.Close()
	return nil
}
