package config

import (
	"strings"
	"time"
)

// Settings is the typed configuration built once at startup and passed to every
// component that needs it.
type Settings struct {
	Port         string
	BaseURL      string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	AcceptedOrigins []string
	AllowedEmails   []string

	SessionSecret string
	SessionCookie string

	GithubClientID     string
	GithubClientSecret string
	GithubAPIBaseURL   string

	Database DatabaseSettings

	RedisAddr     string
	RedisPassword string
	VoteRateLimit float64
	VoteBurst     float64

	S3Bucket        string
	S3Region        string
	S3PublicBaseURL string
	MaxImageBytes   int64

	VotingSweepSchedule string
}

type DatabaseSettings struct {
	Type       string
	DSN        string
	ReplicaDSN string
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
}

// Load builds Settings from a config map produced by New (optionally merged with SSM parameters).
func Load(c map[string]string) Settings {
	s := Settings{
		Port:         GetString(c, "PORT", "8080"),
		BaseURL:      strings.TrimRight(GetString(c, "NEXT_PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		LogLevel:     GetString(c, "LOG_LEVEL", "info"),
		ReadTimeout:  time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout: time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:  time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,

		AcceptedOrigins: GetList(c, "ACCEPTED_ORIGINS"),
		AllowedEmails:   GetList(c, "ALLOWED_EMAILS"),

		SessionSecret: GetString(c, "SESSION_SECRET", ""),
		SessionCookie: GetString(c, "SESSION_COOKIE", "session"),

		GithubClientID:     GetString(c, "AUTH_GITHUB_ID", ""),
		GithubClientSecret: GetString(c, "AUTH_GITHUB_SECRET", ""),
		GithubAPIBaseURL:   strings.TrimRight(GetString(c, "GITHUB_API_BASE_URL", "https://api.github.com"), "/"),

		Database: DatabaseSettings{
			Type:       strings.ToLower(GetString(c, "DB_TYPE", "postgres")),
			DSN:        GetString(c, "DATABASE_URL", ""),
			ReplicaDSN: GetString(c, "DB_REPLICA_DSN", ""),
			Host:       GetString(c, "SUPABASE_DB_HOST", "localhost"),
			User:       GetString(c, "SUPABASE_DB_USER", ""),
			Password:   GetString(c, "SUPABASE_DB_PASSWORD", ""),
			Name:       GetString(c, "SUPABASE_DB_NAME", ""),
			Port:       GetString(c, "SUPABASE_DB_PORT", "5432"),
			SSLMode:    GetString(c, "DB_SSLMODE", "require"),
		},

		RedisAddr:     GetString(c, "REDIS_ADDR", ""),
		RedisPassword: GetString(c, "REDIS_PASSWORD", ""),
		VoteRateLimit: float64(GetInt(c, "VOTE_RATE_PER_MINUTE", 10)) / 60,
		VoteBurst:     float64(GetInt(c, "VOTE_BURST", 5)),

		S3Bucket:        GetString(c, "S3_BUCKET", ""),
		S3Region:        GetString(c, "AWS_REGION", "us-east-1"),
		S3PublicBaseURL: strings.TrimRight(GetString(c, "S3_PUBLIC_BASE_URL", ""), "/"),
		MaxImageBytes:   int64(GetInt(c, "MAX_IMAGE_MB", 5)) << 20,

		VotingSweepSchedule: GetString(c, "VOTING_SWEEP_SCHEDULE", "@every 1m"),
	}

	if len(s.AcceptedOrigins) == 0 {
		s.AcceptedOrigins = []string{"*"}
	}
	for i, email := range s.AllowedEmails {
		s.AllowedEmails[i] = strings.ToLower(email)
	}
	return s
}
