package configuration

import (
	"github.com/botpanel/botpanel/internal/models"

	"go.uber.org/zap"
)

const (
	ProfileDefault = "default"
	ProfileAPI     = "api"
	ProfileWorker  = "worker"
)

// A single process runs everything. Split deployments pair api replicas, which
// own the schema, with a worker that elects itself for the singleton jobs.
var profiles = []models.Profile{
	{
		Name:       ProfileDefault,
		HTTPServer: true,
		OwnsSchema: true,
		Workers: models.WorkerConfig{
			BotLifecycle:   models.WorkerModeAll,
			MetricsSampler: models.WorkerModeSingleton,
		},
	},
	{
		Name:       ProfileAPI,
		HTTPServer: true,
		OwnsSchema: true,
		Workers: models.WorkerConfig{
			BotLifecycle:   models.WorkerModeDisabled,
			MetricsSampler: models.WorkerModeDisabled,
		},
	},
	{
		Name: ProfileWorker,
		Workers: models.WorkerConfig{
			BotLifecycle:   models.WorkerModeSingleton,
			MetricsSampler: models.WorkerModeSingleton,
		},
	},
}

func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names
}

// LookupProfile finds a profile by name. An empty name selects the default profile.
func LookupProfile(name string) (models.Profile, bool) {
	if name == "" {
		name = ProfileDefault
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	return models.Profile{}, false
}

func GetProfile(name string) models.Profile {
	profile, ok := LookupProfile(name)
	if !ok {
		zap.L().Fatal("Unknown profile", zap.String("profile", name), zap.Strings("available", ProfileNames()))
	}

	zap.L().Info("Running profile",
		zap.String("profile", profile.Name),
		zap.Bool("http_server", profile.HTTPServer),
		zap.Bool("owns_schema", profile.OwnsSchema))
	return profile
}
