// Package commands provides CLI command implementations for lingua.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/codefang-tech/lingua/pkg/config"
	"github.com/codefang-tech/lingua/pkg/language"
	"github.com/codefang-tech/lingua/pkg/observability"
)

// errSnapshotArgs is returned when --snapshot is passed without both a
// repository path and a commit hash.
var errSnapshotArgs = errors.New("--snapshot requires exactly two arguments: <repo> <commit>")

// cliObservabilityConfig builds the observability configuration used by
// the stats subcommand: CLI mode, logging to stderr, and no telemetry
// export unless LINGUA_OTLP_ENDPOINT is set in the environment.
func cliObservabilityConfig(cfg *config.Config) observability.Config {
	oc := observability.DefaultConfig()
	oc.Mode = observability.ModeCLI
	oc.LogLevel = parseLogLevel(cfg.Logging.Level)
	oc.LogJSON = cfg.Logging.Format == "json"
	oc.OTLPEndpoint = os.Getenv("LINGUA_OTLP_ENDPOINT")
	oc.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("LINGUA_OTLP_HEADERS"))

	return oc
}

// loadRegistry resolves the language registry for a command run: the
// embedded catalogue by default, or the external catalogue file named by
// registry.catalogue_path when configured.
func loadRegistry(cfg *config.Config) (*language.Registry, error) {
	if cfg.Registry.CataloguePath == "" {
		return language.Default()
	}

	data, err := os.ReadFile(cfg.Registry.CataloguePath)
	if err != nil {
		return nil, fmt.Errorf("read catalogue %s: %w", cfg.Registry.CataloguePath, err)
	}

	entries, err := language.LoadCatalogue(data)
	if err != nil {
		return nil, err
	}

	return language.NewRegistry(entries)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
