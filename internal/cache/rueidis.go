package cache

import "github.com/botpanel/botpanel/internal/models"

func NewRedisCache(config models.RedisCacheConfiguration) (*RueidisCache, error) {
	return newRueidisCache(config.Hosts, config.Password, config.TLSEnabled, config.TLSServerName, "redis")
}

func NewValkeyCache(config models.ValkeyCacheConfiguration) (*RueidisCache, error) {
	return newRueidisCache(config.Hosts, config.Password, config.TLSEnabled, config.TLSServerName, "valkey")
}
