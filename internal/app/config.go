package app

import (
	"github.com/webcomtel/webcom-backend/internal/platform/envutil"
)

type Config struct {
	Env  string
	Port string

	MetricsAddr string
}

func LoadConfig() Config {
	return Config{
		Env:         envutil.String("ENV", "development"),
		Port:        envutil.String("PORT", "8080"),
		MetricsAddr: envutil.String("METRICS_ADDR", ":9091"),
	}
}
