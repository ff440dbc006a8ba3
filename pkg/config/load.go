package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, optionally preloading the
// given .env files. Missing files are logged and skipped.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()

	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found, using system environment variables")
		}
	} else {
		for _, path := range envFiles {
			if err := godotenv.Load(path); err != nil {
				logger.Warn("Environment file not loaded", "path", path)
			}
		}
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"jwt_issuer", cfg.Jwt.Issuer,
		"jwt_expiry", cfg.Jwt.Expiry,
		"jwt_refresh_expiry", cfg.Jwt.RefreshExpiry,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}

func maskValue(value string) string {
	if len(value) <= 6 {
		return "****"
	}
	return value[:3] + "****" + value[len(value)-3:]
}
