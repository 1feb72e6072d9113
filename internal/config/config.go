package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB  string `envconfig:"MONGO_DB" default:"autohub"`

	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	TokenTTLMin int    `envconfig:"TOKEN_TTL_MIN" default:"1440"`

	DBMaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
