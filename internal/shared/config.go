package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv      string
	MetricsAddr string
	MapsBase    string
	MapsKey     string
	GeminiBase  string
	GeminiKey   string
	GeminiModel string
	Radius      int
	PageDelay   time.Duration
	RetryDelay  time.Duration
	Workers     int
	CSVPath     string
	ChartDir    string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:      env("APP_ENV", "prod"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MapsBase:    env("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com/maps/api"),
		MapsKey:     env("GOOGLE_MAPS_API_KEY", ""),
		GeminiBase:  env("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		GeminiKey:   env("GEMINI_API_KEY", ""),
		GeminiModel: env("GEMINI_MODEL", "gemini-2.5-flash"),
		Radius:      atoi("SCOUT_RADIUS_METERS", 2000),
		PageDelay:   time.Duration(atoi("SCOUT_PAGE_DELAY_SECONDS", 2)) * time.Second,
		RetryDelay:  time.Duration(atoi("SCOUT_RETRY_DELAY_SECONDS", 1)) * time.Second,
		Workers:     atoi("SCOUT_WORKERS", 1),
		CSVPath:     env("SCOUT_CSV_PATH", "competitor_data.csv"),
		ChartDir:    env("SCOUT_CHART_DIR", "charts"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
