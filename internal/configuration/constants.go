package configuration

const AppName = "botpanel"

const (
	CacheMaxAppIdentityLifetime = 60
	CacheIdentityRefresh        = 60
	CacheAppIdentityKey         = "app:identity"
	CacheAppRateLimitKey        = "app:ratelimit:%s"
	CacheRateLimitWindow        = 60
	CacheAppWorkerLockKey       = "app:worker:lock:%s"
	CacheAppWorkerLockTTL       = 60
	CacheAppWorkerLockRefresh   = 55
)

const (
	EventsBotLifecycle = "bot_lifecycle"
)

// Messaging provider types.
const (
	ProviderJetstream = "jetstream"
	ProviderMemory    = "memory"
)

// Database dialects.
const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

const (
	DisabledProvider = "none"
	NotifierSMTP     = "smtp"
	NotifierFS       = "filesystem"
	ActivityFS       = "filesystem"
	CacheRedis       = "redis"
	CacheValkey      = "valkey"
)

var ArrayConfigFields = []string{
	"app.allowed_origins",
	"app.trusted_proxies",
	"cache.redis.hosts",
	"cache.valkey.hosts",
}

var ConfigFileSearchPaths = []string{
	"./config.yaml",
	"templates/config.yaml",
}
