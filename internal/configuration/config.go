package configuration

import (
	"fmt"
	"os"
	"strings"

	"github.com/botpanel/botpanel/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// parseArrayFields turns comma or space separated values coming from the environment into lists.
func parseArrayFields(k *koanf.Koanf) {
	for _, field := range ArrayConfigFields {
		raw := k.String(field)
		if raw == "" {
			continue
		}

		raw = strings.Trim(raw, "[]")
		var items []string
		if strings.Contains(raw, ",") {
			items = strings.Split(raw, ",")
		} else {
			items = strings.Fields(raw)
		}

		cleaned := items[:0]
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				cleaned = append(cleaned, item)
			}
		}

		if err := k.Set(field, cleaned); err != nil {
			zap.L().Error("Error parsing array field", zap.String("field", field), zap.Error(err))
		}
	}
}

func readEnvVars(k *koanf.Koanf) error {
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.Join(strings.Split(strings.ToLower(s), "__"), ".")
	}), nil)
	if err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	parseArrayFields(k)
	return nil
}

func configFilePath() string {
	if path := os.Getenv("CONFIG_FILE_PATH"); path != "" {
		return path
	}
	for _, path := range ConfigFileSearchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func readFileConfig(k *koanf.Koanf) error {
	path := configFilePath()
	if path == "" {
		zap.L().Warn("No configuration file found")
		return nil
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	zap.L().Info("Read configuration from file", zap.String("path", path))
	return nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.profile":                ProfileDefault,
		"app.log_level":              "info",
		"app.port":                   8080,
		"app.allowed_origins":        []string{"http://localhost:5173"},
		"app.trusted_proxies":        []string{},
		"app.rate_limit":             120,
		"app.restart_delay":          2,
		"app.metrics_interval":       60,
		"app.static_files.enabled":   false,
		"app.static_files.directory": "web/dist",

		"database.type":        DatabaseSQLite,
		"database.seed":        false,
		"database.sqlite.path": "botpanel.db",

		"cache.type": DisabledProvider,

		"events.type":                      ProviderMemory,
		"events.queues.bot_lifecycle.name": "bot-lifecycle",

		"notifier.type": DisabledProvider,
		"activity.type": DisabledProvider,

		"tracing.enabled":      false,
		"tracing.sample_ratio": 1.0,
		"profiling.enabled":    false,

		"payments.balance":        "$47,832.50",
		"payments.pending":        "$3,245.00",
		"payments.monthly_volume": "$124,560",
	}

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return fmt.Errorf("loading default configuration: %w", err)
	}
	return nil
}

func setIfMissing(k *koanf.Koanf, key string, value any) {
	if !k.Exists(key) {
		_ = k.Set(key, value)
	}
}

func loadConditionalDefaults(k *koanf.Koanf) {
	if k.String("database.type") == DatabasePostgres {
		setIfMissing(k, "database.postgres.port", int32(5432))
		setIfMissing(k, "database.postgres.sslmode", "disable")
	}
	if k.String("events.type") == ProviderJetstream {
		setIfMissing(k, "events.jetstream.port", "4222")
	}
	if k.String("notifier.type") == NotifierSMTP {
		setIfMissing(k, "notifier.smtp.port", 587)
		setIfMissing(k, "notifier.smtp.enable_tls", true)
		setIfMissing(k, "notifier.smtp.skip_verify_tls", false)
	}
}

// Load reads defaults, the optional YAML file and the environment, in that order of precedence.
func Load() (models.Configuration, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return models.Configuration{}, err
	}
	if err := readFileConfig(k); err != nil {
		return models.Configuration{}, err
	}
	if err := readEnvVars(k); err != nil {
		return models.Configuration{}, err
	}
	loadConditionalDefaults(k)

	var config models.Configuration
	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "mapstructure"}); err != nil {
		return models.Configuration{}, fmt.Errorf("decoding configuration: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return models.Configuration{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func Read() models.Configuration {
	config, err := Load()
	if err != nil {
		zap.L().Fatal("Unable to load configuration", zap.Error(err))
	}
	return config
}
