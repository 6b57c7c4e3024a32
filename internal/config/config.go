package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in the
// application: strings for identifiers and secrets, ints for durations and
// costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	Storage StorageConfig // object storage for uploaded images
}

// StorageConfig selects and parameterizes the object-storage backend.
// Driver "s3" targets any S3-compatible endpoint (Cloudflare R2, MinIO);
// "local" writes under LocalPath and is meant for development.
type StorageConfig struct {
	Driver    string // STORAGE_DRIVER: "s3" or "local" (default "local")
	Endpoint  string // S3_ENDPOINT, e.g. <account>.r2.cloudflarestorage.com
	AccessKey string // S3_ACCESS_KEY
	SecretKey string // S3_SECRET_KEY
	Bucket    string // S3_BUCKET
	UseSSL    bool   // S3_USE_SSL (default true)
	PublicURL string // PUBLIC_BASE_URL serving uploaded objects (CDN or custom domain)
	LocalPath string // STORAGE_LOCAL_PATH for the local driver (default "uploads")
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:            must("APP_ENV"),  // environment (dev/test/prod)
		Port:           must("APP_PORT"), // port to bind the HTTP server
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
	}

	cfg.Storage = StorageConfig{
		Driver:    getenv("STORAGE_DRIVER", "local"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Bucket:    os.Getenv("S3_BUCKET"),
		UseSSL:    getenv("S3_USE_SSL", "true") == "true",
		PublicURL: os.Getenv("PUBLIC_BASE_URL"),
		LocalPath: getenv("STORAGE_LOCAL_PATH", "uploads"),
	}
	if cfg.Storage.Driver == "s3" {
		// fail fast on a half-configured bucket instead of 500ing uploads later
		if cfg.Storage.Endpoint == "" || cfg.Storage.AccessKey == "" ||
			cfg.Storage.SecretKey == "" || cfg.Storage.Bucket == "" {
			log.Fatal("STORAGE_DRIVER=s3 requires S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY and S3_BUCKET")
		}
	}

	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
