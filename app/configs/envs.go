package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type ENV struct {
	Port            string
	APP_ENV         string
	APIBaseURL      string
	APITimeout      time.Duration
	ImageHostURL    string
	ImageHostKey    string
	MaxImages       int
	PageSize        int
	SearchDebounce  time.Duration
	AppAuthKey      string
	AppEncKey       string
	CSRFKey         string
	DisplayTimezone string
}

const (
	defaultPort         = "3000"
	defaultAPIBaseURL   = "http://localhost:8080/api/v1"
	defaultImageHostURL = "https://api.imgbb.com/1/upload"
)

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}
	return FromEnviron()
}

// FromEnviron builds ENV from the process environment only.
func FromEnviron() ENV {
	return ENV{
		Port:            getEnv("APP_PORT", defaultPort),
		APP_ENV:         getEnv("APP_ENV", "development"),
		APIBaseURL:      strings.TrimRight(getEnv("API_BASE_URL", defaultAPIBaseURL), "/"),
		APITimeout:      getDuration("API_TIMEOUT", 15*time.Second),
		ImageHostURL:    getEnv("IMAGE_HOST_URL", defaultImageHostURL),
		ImageHostKey:    os.Getenv("IMAGE_HOST_KEY"),
		MaxImages:       getInt("MAX_IMAGES", 5),
		PageSize:        getInt("PAGE_SIZE", 20),
		SearchDebounce:  getDuration("SEARCH_DEBOUNCE", 300*time.Millisecond),
		AppAuthKey:      os.Getenv("APP_AUTH_KEY"),
		AppEncKey:       os.Getenv("APP_ENC_KEY"),
		CSRFKey:         os.Getenv("CSRF_KEY"),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "UTC"),
	}
}

func (e ENV) IsProduction() bool { return e.APP_ENV == "production" }

// Location resolves DisplayTimezone, falling back to UTC.
func (e ENV) Location() *time.Location {
	loc, err := time.LoadLocation(e.DisplayTimezone)
	if err != nil {
		log.Printf("configs.Location: unknown DISPLAY_TIMEZONE %q, using UTC: %v", e.DisplayTimezone, err)
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("configs: invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("configs: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
