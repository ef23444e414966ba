package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The JWT secret is read once here and injected
// into the components that need it; nothing reads the environment after
// startup.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs (SECRET)
	Issuer         string // optional iss claim; empty disables the issuer check
	Audience       string // optional aud claim; empty disables the audience check
	AccessTTLMin   int    // access token time‑to‑live in minutes
	RefreshTTLDays int    // refresh token time‑to‑live in days
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  SECRET in particular
// must be present: a service signing tokens with an empty secret is worse
// than one that refuses to start.
func Load() Config {
	return Config{
		Env:            getenvDefault("APP_ENV", "dev"),
		Port:           getenvDefault("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("SECRET"),
		Issuer:         os.Getenv("ISSUER"),
		Audience:       os.Getenv("AUDIENCE"),
		AccessTTLMin:   intDefault("JWT_SECRET_EXPIRES", 15),
		RefreshTTLDays: intDefault("REFRESH_TOKEN_TTL_DAYS", 7),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenvDefault returns the variable's value or def when unset.
func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intDefault parses an optional integer variable, falling back to def when
// the variable is unset.  A present but malformed value is fatal.
func intDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
