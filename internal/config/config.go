package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database `envPrefix:"DB_"`
	Metrics     Metrics  `envPrefix:"METRICS_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) IsProduction() bool {
	return e.Name == "production"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host            string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

func (h HTTPServer) Address() string {
	return h.Host + ":" + h.Port
}

type Database struct {
	// Driver is one of sqlite, mysql, postgres.
	Driver          string        `env:"DRIVER" envDefault:"sqlite"`
	URL             string        `env:"URL" envDefault:"storefront.db?_foreign_keys=1"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"50"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"1h"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"warn"`
	SeedCatalog     bool          `env:"SEED_CATALOG" envDefault:"false"`
}

type Metrics struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Service string `env:"SERVICE" envDefault:"storefront-api"`
}
