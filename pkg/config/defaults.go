package config

// Exported default values, mirrored from the unexported defaults wired into
// viper in config.go, so tests and callers can assert against the same
// constants LoadConfig falls back to.
const (
	DefaultAggregateMaxEntries = defaultMaxEntries
	DefaultAggregateWorkers    = defaultWorkers
	DefaultAggregateCacheDir   = ""

	DefaultRegistryCataloguePath = ""

	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"
	DefaultLoggingOutput = "stdout"
)
