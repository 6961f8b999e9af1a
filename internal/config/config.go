package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Scoring  ScoringConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// ScoringConfig holds the company-independent scoring defaults.
// Companies without explicit KPI settings fall back to these values.
type ScoringConfig struct {
	AttendanceWeight int
	TaskWeight       int
	LatePenalty      float64
	LeaderboardLimit int
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, reading environment directly")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "pulse"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Scoring defaults, applied when a company has no KPI settings row
	attendanceWeight, err := strconv.Atoi(getEnv("SCORE_ATTENDANCE_WEIGHT", "40"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCORE_ATTENDANCE_WEIGHT: %w", err)
	}

	taskWeight, err := strconv.Atoi(getEnv("SCORE_TASK_WEIGHT", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCORE_TASK_WEIGHT: %w", err)
	}

	latePenalty, err := strconv.ParseFloat(getEnv("SCORE_LATE_PENALTY", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SCORE_LATE_PENALTY: %w", err)
	}

	leaderboardLimit, err := strconv.Atoi(getEnv("LEADERBOARD_LIMIT", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_LIMIT: %w", err)
	}

	config.Scoring = ScoringConfig{
		AttendanceWeight: attendanceWeight,
		TaskWeight:       taskWeight,
		LatePenalty:      latePenalty,
		LeaderboardLimit: leaderboardLimit,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Scoring.AttendanceWeight < 0 || c.Scoring.TaskWeight < 0 {
		return fmt.Errorf("scoring weights must not be negative")
	}
	if c.Scoring.LeaderboardLimit <= 0 {
		return fmt.Errorf("LEADERBOARD_LIMIT must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
