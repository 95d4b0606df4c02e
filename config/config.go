package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS    = "" // e.g. "example.com,example2.com"
	BIND_ADDRESS   = "0.0.0.0:8080"
	MYSQL_DSN      = ""            // MySQL will be used if this is set
	SQLITE_FILE    = "keepsake.db" // SQLite will be used if MYSQL_DSN is not configured
	DEBUG_MODE     = false
	SESSION_SECRET = "change me in production"
	CORS_ORIGINS   = "*"

	// Object storage. STORAGE_TYPE is one of "disk", "s3" or "minio"
	STORAGE_TYPE     = "disk"
	STORAGE_BUCKET   = "albums"
	STORAGE_PATH     = "uploads" // disk only
	STORAGE_ENDPOINT = ""        // minio, or a custom S3 endpoint
	STORAGE_REGION   = "us-east-1"
	STORAGE_KEY      = ""
	STORAGE_SECRET   = ""
	STORAGE_USE_SSL  = true
	PUBLIC_URL       = "" // Base URL used to build public object URLs, e.g. "https://photos.example.com"
	CACHE_CONTROL    = "3600"

	// Uploaded JPEGs larger than this (either side, in px) are downscaled. 0 disables it
	MAX_IMAGE_DIMENSION = 0

	// The daily sweet note changes at midnight in this zone.
	// DAY_TIMEZONE wins over DAY_LAT/DAY_LONG; with neither set the process zone is used
	DAY_TIMEZONE = ""
	DAY_LAT      = 0.0
	DAY_LONG     = 0.0

	LOG_LEVEL       = "info"
	LOG_FILE        = "" // e.g. "logs/keepsake.log", rotated by size
	LOG_MAX_SIZE    = 100
	LOG_MAX_BACKUPS = 5
	LOG_MAX_AGE     = 30
)

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment are not overridden by .env
func Load() {
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("SESSION_SECRET", &SESSION_SECRET)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvString("STORAGE_TYPE", &STORAGE_TYPE)
	readEnvString("STORAGE_BUCKET", &STORAGE_BUCKET)
	readEnvString("STORAGE_PATH", &STORAGE_PATH)
	readEnvString("STORAGE_ENDPOINT", &STORAGE_ENDPOINT)
	readEnvString("STORAGE_REGION", &STORAGE_REGION)
	readEnvString("STORAGE_KEY", &STORAGE_KEY)
	readEnvString("STORAGE_SECRET", &STORAGE_SECRET)
	readEnvBool("STORAGE_USE_SSL", &STORAGE_USE_SSL)
	readEnvString("PUBLIC_URL", &PUBLIC_URL)
	readEnvString("CACHE_CONTROL", &CACHE_CONTROL)
	readEnvInt("MAX_IMAGE_DIMENSION", &MAX_IMAGE_DIMENSION)
	readEnvString("DAY_TIMEZONE", &DAY_TIMEZONE)
	readEnvFloat("DAY_LAT", &DAY_LAT)
	readEnvFloat("DAY_LONG", &DAY_LONG)
	readEnvString("LOG_LEVEL", &LOG_LEVEL)
	readEnvString("LOG_FILE", &LOG_FILE)
	readEnvInt("LOG_MAX_SIZE", &LOG_MAX_SIZE)
	readEnvInt("LOG_MAX_BACKUPS", &LOG_MAX_BACKUPS)
	readEnvInt("LOG_MAX_AGE", &LOG_MAX_AGE)
}

// CORSOrigins splits CORS_ORIGINS on commas
func CORSOrigins() []string {
	result := []string{}
	for _, o := range strings.Split(CORS_ORIGINS, ",") {
		if o = strings.TrimSpace(o); o != "" {
			result = append(result, o)
		}
	}
	return result
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvFloat(name string, value *float64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return
	}
	*value = f
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
