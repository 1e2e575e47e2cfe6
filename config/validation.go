package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables CI runs must provide. Every other environment reads
// the same values from mounted secret files, so only CI is checked against
// the environment directly.
var ciEnvVars = []string{
	"SERVER_PORT",
	"SERVER_HOST",
	"DB_HOST",
	"DB_PORT",
	"DB_USER",
	"DB_PASSWORD",
	"DB_NAME",
	"DB_SSL_MODE",
	"REDIS_HOST",
	"REDIS_PORT",
	"REDIS_PASSWORD",
	"REDIS_URL",
	"JWT_SECRET",
}

// ValidateConfig confirms that every value the server cannot start without
// made it into the Config, whichever source it was loaded from.
func ValidateConfig(cfg *Config) error {
	var missing []string

	if GetEnvironment() == CI {
		for _, name := range ciEnvVars {
			if os.Getenv(name) == "" {
				missing = append(missing, "environment variable "+name)
			}
		}
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"server_port", cfg.ServerPort},
		{"server_host", cfg.ServerHost},
		{"db_host", cfg.DBHost},
		{"db_port", cfg.DBPort},
		{"db_user", cfg.DBUser},
		{"db_password", cfg.DBPassword},
		{"db_name", cfg.DBName},
		{"db_ssl_mode", cfg.DBSSLMode},
		{"redis_host", cfg.RedisHost},
		{"redis_port", cfg.RedisPort},
		{"redis_password", cfg.RedisPassword},
		{"jwt_secret", cfg.JWTSecret},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("incomplete configuration, missing: %s", strings.Join(missing, ", "))
	}
	return nil
}
