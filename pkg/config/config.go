package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config collects every environment setting the service reads. Loaded once at
// startup and provided through fx; nothing else touches os.Getenv.
type Config struct {
	Port        string
	PostgresURL string

	// Identity provider (JWT over JWKS)
	IdentityIssuer  string
	IdentityJWKSURL string

	// Text generation
	TextGenProvider string // "openai" or "gemini"
	OpenAIAPIKey    string
	OpenAIModel     string
	GeminiAPIKey    string
	GeminiModel     string

	// Image generation
	ImageModel string

	// Blob storage (S3-compatible)
	S3BaseEndpoint string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3PublicBase   string // base URL for public object access

	// SMTP (optional, bulk-import invites)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	AdminEmails      []string
	SuperAdminEmails []string

	StartingCredits int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		PostgresURL: os.Getenv("POSTGRES_URL"),

		IdentityIssuer:  os.Getenv("IDENTITY_ISSUER"),
		IdentityJWKSURL: os.Getenv("IDENTITY_JWKS_URL"),

		TextGenProvider: getEnvWithDefault("TEXTGEN_PROVIDER", "openai"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getEnvWithDefault("OPENAI_MODEL", "gpt-4"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),

		ImageModel: getEnvWithDefault("IMAGE_MODEL", "dall-e-3"),

		S3BaseEndpoint: os.Getenv("S3_BASE_ENDPOINT"),
		S3Region:       getEnvWithDefault("S3_REGION", "us-east-1"),
		S3Bucket:       getEnvWithDefault("S3_BUCKET", "avatars"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3PublicBase:   os.Getenv("S3_PUBLIC_BASE"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		SMTPFromName: getEnvWithDefault("SMTP_FROM_NAME", "Avatarforge"),

		AdminEmails:      splitEmails(os.Getenv("ADMIN_EMAILS")),
		SuperAdminEmails: splitEmails(os.Getenv("SUPER_ADMIN_EMAILS")),

		StartingCredits: getEnvInt("STARTING_CREDITS", 5),
	}

	if len(cfg.SuperAdminEmails) == 0 && len(cfg.AdminEmails) > 0 {
		// First admin in the allow-list may grant admin rights unless a
		// dedicated super-admin list is configured.
		cfg.SuperAdminEmails = cfg.AdminEmails[:1]
	}

	return cfg
}

func (c *Config) IsAdminEmail(email string) bool {
	return containsEmail(c.AdminEmails, email)
}

func (c *Config) IsSuperAdminEmail(email string) bool {
	return containsEmail(c.SuperAdminEmails, email)
}

func containsEmail(list []string, email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range list {
		if e == email {
			return true
		}
	}
	return false
}

func splitEmails(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using default %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
