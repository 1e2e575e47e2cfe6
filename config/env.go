package config

import "os"

// Environment selects which source LoadConfig reads configuration from.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment resolves the runtime environment. CI runners announce
// themselves through the CI variable; everything else is chosen by ENV and
// defaults to development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsDevelopment reports whether the process runs in development mode.
// Development mode unlocks the token mint route and verbose error payloads.
func IsDevelopment() bool {
	return GetEnvironment() == Development
}
