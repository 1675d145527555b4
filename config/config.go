package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port              string   `envconfig:"PORT" default:"8080"`
	MongoURI          string   `envconfig:"MONGO_URI" required:"true"`
	DBName            string   `envconfig:"DB_NAME" default:"meatadmin"`
	JWTSecret         string   `envconfig:"JWT_SECRET" required:"true"`
	LogLevel          string   `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins       []string `envconfig:"CORS_ORIGINS" default:"*"`
	WalletAutoCredit  bool     `envconfig:"WALLET_AUTO_CREDIT" default:"false"`
	RecentOrdersLimit int      `envconfig:"RECENT_ORDERS_LIMIT" default:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
