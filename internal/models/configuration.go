package models

type Configuration struct {
	App       AppConfiguration       `mapstructure:"app"       validate:"required"`
	Database  DatabaseConfiguration  `mapstructure:"database"  validate:"required"`
	Cache     CacheConfiguration     `mapstructure:"cache"     validate:"required"`
	Events    EventsConfiguration    `mapstructure:"events"    validate:"required"`
	Notifier  NotifierConfiguration  `mapstructure:"notifier"  validate:"required"`
	Activity  ActivityConfiguration  `mapstructure:"activity"  validate:"required"`
	Tracing   TracingConfiguration   `mapstructure:"tracing"`
	Profiling ProfilingConfiguration `mapstructure:"profiling"`
	Payments  PaymentsConfiguration  `mapstructure:"payments"  validate:"required"`
}

type AppConfiguration struct {
	Profile         string              `mapstructure:"profile"          validate:"oneof=default api worker"`
	LogLevel        string              `mapstructure:"log_level"        validate:"oneof=debug info warn error fatal panic"`
	Port            int                 `mapstructure:"port"             validate:"gte=80,lte=65535"`
	AllowedOrigins  []string            `mapstructure:"allowed_origins"  validate:"required"`
	TrustedProxies  []string            `mapstructure:"trusted_proxies"  validate:"dive,cidr|ip"`
	RateLimit       int                 `mapstructure:"rate_limit"       validate:"gte=0"`
	RestartDelay    int                 `mapstructure:"restart_delay"    validate:"gte=0,lte=300"`
	MetricsInterval int                 `mapstructure:"metrics_interval" validate:"gte=5,lte=3600"`
	StaticFiles     StaticConfiguration `mapstructure:"static_files"`
}

type StaticConfiguration struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory" validate:"required_if=Enabled true"`
}

type DatabaseConfiguration struct {
	Type     string                 `mapstructure:"type"     validate:"required,oneof=postgres sqlite"`
	Seed     bool                   `mapstructure:"seed"`
	Postgres *PostgresConfiguration `mapstructure:"postgres" validate:"required_if=Type postgres"`
	SQLite   *SQLiteConfiguration   `mapstructure:"sqlite"   validate:"required_if=Type sqlite"`
}

type PostgresConfiguration struct {
	Host     string `mapstructure:"host"     validate:"required"`
	Port     int32  `mapstructure:"port"     validate:"gte=80,lte=65535"`
	User     string `mapstructure:"user"     validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	Name     string `mapstructure:"name"     validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

type SQLiteConfiguration struct {
	Path string `mapstructure:"path" validate:"required"`
}

type CacheConfiguration struct {
	Type   string                    `mapstructure:"type"   validate:"required,oneof=none redis valkey"`
	Redis  *RedisCacheConfiguration  `mapstructure:"redis"  validate:"required_if=Type redis"`
	Valkey *ValkeyCacheConfiguration `mapstructure:"valkey" validate:"required_if=Type valkey"`
}

type RedisCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"           validate:"required,min=1"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type ValkeyCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"           validate:"required,min=1"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type QueueConfig struct {
	Name string `mapstructure:"name" validate:"required"`
}

type EventsConfiguration struct {
	Type      string                 `mapstructure:"type"      validate:"required,oneof=jetstream memory"`
	Queues    map[string]QueueConfig `mapstructure:"queues"    validate:"required,dive"`
	Jetstream *JetStreamEventsConfig `mapstructure:"jetstream" validate:"required_if=Type jetstream"`
}

type JetStreamEventsConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port string `mapstructure:"port" validate:"required"`
}

type MailerConfiguration struct {
	Host          string `mapstructure:"host"            validate:"required"`
	Port          int    `mapstructure:"port"            validate:"required"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	Sender        string `mapstructure:"sender"          validate:"required,email"`
	EnableTLS     bool   `mapstructure:"enable_tls"`
	SkipVerifyTLS bool   `mapstructure:"skip_verify_tls"`
}

type NotifierConfiguration struct {
	Type          string                           `mapstructure:"type"           validate:"required,oneof=none smtp filesystem"`
	OperatorEmail string                           `mapstructure:"operator_email" validate:"required_unless=Type none,omitempty,email"`
	SMTP          *MailerConfiguration             `mapstructure:"smtp"           validate:"required_if=Type smtp"`
	Filesystem    *FilesystemNotifierConfiguration `mapstructure:"filesystem"     validate:"required_if=Type filesystem"`
}

type FilesystemNotifierConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type ActivityConfiguration struct {
	Type       string                           `mapstructure:"type"       validate:"required,oneof=none filesystem"`
	Filesystem *FilesystemActivityConfiguration `mapstructure:"filesystem" validate:"required_if=Type filesystem"`
}

type FilesystemActivityConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type TracingConfiguration struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"     validate:"required_if=Enabled true,omitempty,http_url"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}

type ProfilingConfiguration struct {
	Enabled       bool   `mapstructure:"enabled"`
	ServerAddress string `mapstructure:"server_address" validate:"required_if=Enabled true,omitempty,http_url"`
}

// PaymentsConfiguration holds the figures shown by the simulated Xendit balance widget.
type PaymentsConfiguration struct {
	Balance       string `mapstructure:"balance"        validate:"required"`
	Pending       string `mapstructure:"pending"        validate:"required"`
	MonthlyVolume string `mapstructure:"monthly_volume" validate:"required"`
}
