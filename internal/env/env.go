package env

import (
	"os"

	"github.com/ekisa-team/denobench/internal/envvar"
)

// Environment identifies the runtime environment.
type Environment string

const (
	// Development is the default environment.
	Development Environment = "development"

	// Production is the environment for deployed runs.
	Production Environment = "production"
)

// FromEnv reads the environment from DENOBENCH_ENV.
func FromEnv() Environment {
	switch os.Getenv(envvar.DenobenchEnv) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}
