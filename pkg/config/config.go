// Package config holds the application configuration, populated from the
// environment with envconfig. A .env file is loaded first when present.
package config

import "time"

// App is the root configuration.
type App struct {
	Env       string `envconfig:"APP_ENV" default:"development"`
	Server    Server
	DB        DB
	Jwt       Jwt
	Admin     Admin
	RateLimit RateLimit
}

// Server configures the HTTP listener.
type Server struct {
	Host   string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port   int    `envconfig:"SERVER_PORT" default:"3000"`
	Scheme string `envconfig:"SERVER_SCHEME" default:"http"`
}

// DB configures the postgres connection.
type DB struct {
	Url string `envconfig:"DATABASE_URL"`
}

// Jwt configures token issuance. Access and refresh tokens are signed with
// separate keys so a leaked refresh key cannot mint access tokens.
type Jwt struct {
	Secret        string        `envconfig:"JWT_SECRET"`
	RefreshSecret string        `envconfig:"JWT_REFRESH_SECRET"`
	Issuer        string        `envconfig:"JWT_ISSUER" default:"fondos"`
	Expiry        time.Duration `envconfig:"JWT_EXPIRY" default:"1h"`
	RefreshExpiry time.Duration `envconfig:"JWT_REFRESH_EXPIRY" default:"3h"`
}

// Admin configures the bootstrap administrator account seeded at startup.
type Admin struct {
	Username string `envconfig:"ADMIN_USERNAME" default:"admin"`
	Email    string `envconfig:"ADMIN_EMAIL" default:"admin@localhost"`
	Password string `envconfig:"ADMIN_PASSWORD"`
}

// RateLimit configures the request limiter middleware.
type RateLimit struct {
	MaxRequests int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}
