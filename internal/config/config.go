// Package config define la configuración del proceso y cómo se carga.
//
// Orden de precedencia (de menor a mayor): defaults, archivo YAML (DOGAPI_CONFIG),
// variables de entorno con prefijo DOGAPI_.
package config

import "time"

type Config struct {
	// Addr es la dirección de escucha HTTP, ej ":8080".
	Addr    string `koanf:"addr" validate:"required"`
	AppName string `koanf:"app_name"`

	// LogLevel: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`
	// LogFormat: json o text.
	LogFormat string `koanf:"log_format" validate:"oneof=json text"`

	DogAPIBaseURL   string        `koanf:"dog_api_base_url" validate:"required,url"`
	DogAPITimeout   time.Duration `koanf:"dog_api_timeout" validate:"gt=0"`
	DogAPIUserAgent string        `koanf:"dog_api_user_agent"`

	// DBDSN vacío => store en memoria.
	DBDSN         string `koanf:"db_dsn"`
	DBAutoMigrate bool   `koanf:"db_auto_migrate"`

	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
	MetricsEnabled     bool     `koanf:"metrics_enabled"`
	SwaggerEnabled     bool     `koanf:"swagger_enabled"`
}

// New devuelve la configuración por defecto.
func New() *Config {
	return &Config{
		Addr:      ":8080",
		AppName:   "dog-users-api",
		LogLevel:  "info",
		LogFormat: "text",

		DogAPIBaseURL:   "https://dog.ceo/api",
		DogAPITimeout:   10 * time.Second,
		DogAPIUserAgent: "dog-users-api/1.0",

		DBAutoMigrate: true,

		// write_timeout tiene que cubrir el timeout upstream
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		CORSAllowedOrigins: []string{"*"},
		MetricsEnabled:     true,
		SwaggerEnabled:     true,
	}
}

// UsesPostgres indica si hay DSN configurado.
func (c *Config) UsesPostgres() bool {
	return c.DBDSN != ""
}
