package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Upload backends understood by UploadBackend.
const (
	UploadDisk  = "disk"
	UploadMinio = "minio"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port     string
	LogLevel string

	MongoURI string
	MongoDB  string

	JWTSecret string
	TokenTTL  time.Duration

	// AllowedOrigin is the single front-end origin accepted by CORS.
	AllowedOrigin string

	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string

	UploadBackend  string
	UploadDir      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// Load reads an optional env file and then the process environment.
// A missing env file is not an error.
func Load(path string) (*Config, error) {
	if path != "" {
		_ = godotenv.Load(path)
	}

	smtpPort, err := strconv.Atoi(getenv("SMTP_PORT", "587"))
	if err != nil {
		return nil, errors.New("SMTP_PORT must be an integer")
	}
	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, errors.New("TOKEN_TTL must be a duration such as 1h")
	}

	return &Config{
		Port:           getenv("PORT", "4000"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MongoURI:       getenv("MONGO_URI", ""),
		MongoDB:        getenv("MONGO_DB", "Main_Blog"),
		JWTSecret:      getenv("JWT_SECRET", getenv("SECRET_KEY", "")),
		TokenTTL:       ttl,
		AllowedOrigin:  getenv("APPLICATION_URL", "http://localhost:3000"),
		SMTPHost:       getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       smtpPort,
		EmailUser:      getenv("EMAIL_USER", ""),
		EmailPass:      getenv("EMAIL_PASS", ""),
		UploadBackend:  getenv("UPLOAD_BACKEND", UploadDisk),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "blog-images"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
	}, nil
}

// Validate rejects configurations that would start the server with
// no database, an empty signing secret or no mail credentials.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.EmailUser == "" || c.EmailPass == "" {
		return errors.New("EMAIL_USER and EMAIL_PASS are required to send welcome mail")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	switch c.UploadBackend {
	case UploadDisk:
	case UploadMinio:
		if c.MinioAccessKey == "" || c.MinioSecretKey == "" {
			return errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for the minio upload backend")
		}
	default:
		return errors.New("UPLOAD_BACKEND must be disk or minio")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
