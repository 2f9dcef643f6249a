package communitysite

import (
	"log"
	"os"
	"strings"
)

// SiteConfig holds all configuration for a communitysite deployment.
type SiteConfig struct {
	Name        string // Site name (default "Community Site")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for the RSS feed

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/site.db")
	UploadDir    string // Gallery upload directory (default "public/uploads")

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	// First-run admin bootstrap: applied only while the users table is empty.
	AdminName     string
	AdminEmail    string
	AdminPassword string

	Env      string // "development" or "production"
	LogLevel string // zerolog level name
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Community Site"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.UploadDir == "" {
		c.UploadDir = "public/uploads"
	}
	if c.AdminName == "" {
		c.AdminName = "Admin"
	}
}

// ConfigFromEnv builds a SiteConfig from environment variables.
func ConfigFromEnv() SiteConfig {
	return SiteConfig{
		Name:          EnvOr("SITE_NAME", ""),
		URL:           EnvOr("SITE_URL", ""),
		Description:   EnvOr("SITE_DESCRIPTION", ""),
		Addr:          EnvOr("LISTEN_ADDR", ""),
		DatabasePath:  EnvOr("DATABASE_PATH", ""),
		UploadDir:     EnvOr("UPLOAD_DIR", ""),
		SessionSecret: MustEnv("SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
		AdminName:     EnvOr("ADMIN_NAME", ""),
		AdminEmail:    EnvOr("ADMIN_EMAIL", ""),
		AdminPassword: EnvOr("ADMIN_PASSWORD", ""),
		Env:           EnvOr("ENV", "production"),
		LogLevel:      EnvOr("LOG_LEVEL", ""),
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("communitysite: required environment variable %s is not set", key)
	}
	return v
}
