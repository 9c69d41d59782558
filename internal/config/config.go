package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort           string   `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL        string   `env:"DATABASE_URL,required"`
	JWTSecret          string   `env:"JWT_SECRET,required"`
	RedisAddr          string   `env:"REDIS_ADDR"`
	RedisPassword      string   `env:"REDIS_PASSWORD"`
	RedisDB            int      `env:"REDIS_DB" envDefault:"0"`
	LoginWindowMinutes int      `env:"LOGIN_WINDOW_MINUTES" envDefault:"10"`
	LoginMaxAttempts   int      `env:"LOGIN_MAX_ATTEMPTS" envDefault:"10"`
	ProtectedPrefixes  []string `env:"PROTECTED_PREFIXES" envSeparator:"," envDefault:"/dashboard"`
	LoginURL           string   `env:"LOGIN_URL" envDefault:"/login"`
}

// LoadConfig carga la configuración desde variables de entorno.
// JWT_SECRET y DATABASE_URL son obligatorios: sin ellos el arranque falla.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
