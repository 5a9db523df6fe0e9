package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend API config
const DEFAULT_API_BASE_URL = "http://localhost:3001"
const DEFAULT_HTTP_ADDR = ":3001"
const API_REQUEST_TIMEOUT_SECONDS = 10

// API modes: "http" talks to API_BASE_URL, "mock" serves the seed file.
const API_MODE_HTTP = "http"
const API_MODE_MOCK = "mock"

// Redis config. An empty address selects the in-memory client.
const DEFAULT_REDIS_ADDR = ""
const DEFAULT_REDIS_PASSWORD = ""
const DEFAULT_REDIS_DB = 0

// Placemark index refresher config
const DEFAULT_INDEX_REFRESH_MINUTES = 15

// Locator config
const DEFAULT_COLLATION_LOCALE = "ru"
const PAN_DURATION_MILLIS = 500
const ACTIVE_MARKER_COLOR = "#FF0000"
const DEFAULT_MARKER_COLOR = "#525e75"
const DEFAULT_REQUEST_DESCRIPTION = "4 шины Pirelli 245/45/18 зима шипы"
const DEFAULT_CLIENT_NAME = "Иван Иванов"
const DEFAULT_CLIENT_PHONE = "+7 900 000-00-00"

// Map defaults (Saint Petersburg)
const DEFAULT_MAP_CENTER_LAT = 59.943988
const DEFAULT_MAP_CENTER_LON = 30.306329
const DEFAULT_MAP_ZOOM = 10

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const PLACEMARKS_SEED_RESOURCE = "placemarks.json"
const VIEWPORT_PLOT_FILE = "viewport_map.html"

// Config holds runtime settings resolved from defaults, .env and the environment.
type Config struct {
	APIBaseURL          string
	APIMode             string
	HTTPAddr            string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	SeedFile            string
	IndexRefreshMinutes int
	CollationLocale     string
	RequestTimeout      time.Duration
	PanDuration         time.Duration
	RequestDescription  string
	ClientName          string
	ClientPhone         string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:          envString("API_BASE_URL", DEFAULT_API_BASE_URL),
		APIMode:             envString("API_MODE", API_MODE_HTTP),
		HTTPAddr:            envString("HTTP_ADDR", DEFAULT_HTTP_ADDR),
		RedisAddr:           envString("REDIS_ADDR", DEFAULT_REDIS_ADDR),
		RedisPassword:       envString("REDIS_PASSWORD", DEFAULT_REDIS_PASSWORD),
		RedisDB:             envInt("REDIS_DB", DEFAULT_REDIS_DB),
		SeedFile:            envString("SEED_FILE", GetResourcePath(PLACEMARKS_SEED_RESOURCE)),
		IndexRefreshMinutes: envInt("INDEX_REFRESH_MINUTES", DEFAULT_INDEX_REFRESH_MINUTES),
		CollationLocale:     envString("COLLATION_LOCALE", DEFAULT_COLLATION_LOCALE),
		RequestTimeout:      API_REQUEST_TIMEOUT_SECONDS * time.Second,
		PanDuration:         PAN_DURATION_MILLIS * time.Millisecond,
		RequestDescription:  DEFAULT_REQUEST_DESCRIPTION,
		ClientName:          envString("CLIENT_NAME", DEFAULT_CLIENT_NAME),
		ClientPhone:         envString("CLIENT_PHONE", DEFAULT_CLIENT_PHONE),
	}
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}

func envString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
