package models

// WorkerMode controls where a background worker runs.
type WorkerMode string

const (
	WorkerModeDisabled  WorkerMode = "disabled"
	WorkerModeSingleton WorkerMode = "singleton" // one replica at a time, elected through the cache lock
	WorkerModeAll       WorkerMode = "all"
)

// Profile selects the parts of the panel a process runs.
type Profile struct {
	Name string
	// HTTPServer serves the REST API and the dashboard assets.
	HTTPServer bool
	// OwnsSchema marks the process that applies migrations and seeds demo data.
	OwnsSchema bool
	Workers    WorkerConfig
}

type WorkerConfig struct {
	BotLifecycle   WorkerMode
	MetricsSampler WorkerMode
}

func (w WorkerConfig) AnyEnabled() bool {
	for _, mode := range []WorkerMode{w.BotLifecycle, w.MetricsSampler} {
		if mode != WorkerModeDisabled {
			return true
		}
	}
	return false
}

// NeedsEvents reports whether the process publishes restart requests or consumes them.
func (p Profile) NeedsEvents() bool {
	return p.HTTPServer || p.Workers.BotLifecycle != WorkerModeDisabled
}
