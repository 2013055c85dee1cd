package cache

type ICache interface {
	RegisterPlatform(id string) error
	DeleteInactivePlatform() error
	StartIdentityTicker(id string)

	// GetRateLimit counts a request and returns the seconds to wait once the limit is exceeded, 0 otherwise.
	GetRateLimit(clientIdentifier string, requestsPerMinute int) (int, error)

	TryAcquireLock(key string, instanceID string, ttlSeconds int) (bool, error)
	RefreshLock(key string, instanceID string, ttlSeconds int) (bool, error)

	Close() error
}
