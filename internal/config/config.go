package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DefaultSecretKey is the out-of-the-box session signing key. It must be
// overridden via SECRET_KEY before running anywhere that matters; main
// logs a warning when it is still in use.
const DefaultSecretKey = "default_secret_key"

// Config holds everything the server needs from the environment.
type Config struct {
	Port         string
	DatabasePath string
	SecretKey    string
	UploadDir    string
	StaticDir    string
	TemplateDir  string
}

// Load reads an optional .env file and then the environment. Every value
// has a development default, so Load never fails.
func Load() *Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	return &Config{
		Port:         getenv("PORT", "8080"),
		DatabasePath: getenv("DATABASE_PATH", "notes.db"),
		SecretKey:    getenv("SECRET_KEY", DefaultSecretKey),
		UploadDir:    getenv("UPLOAD_DIR", "web/static/uploads"),
		StaticDir:    getenv("STATIC_DIR", "web/static"),
		TemplateDir:  getenv("TEMPLATE_DIR", "web/templates"),
	}
}

// InsecureSecret reports whether the session key is still the shipped default.
func (c *Config) InsecureSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
