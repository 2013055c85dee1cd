package core

import "time"

const (
	serverReadTimeout    = 5 * time.Second
	serverWriteTimeout   = 10 * time.Second
	serverIdleTimeout    = 60 * time.Second
	requestTimeout       = 5 * time.Second
	shutdownGracePeriod  = 10 * time.Second
	corsMaxAge           = 300
	tracingExportTimeout = 5 * time.Second
)
