package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	DatabasePath    string
	CORSOrigin      string
	BaseURL         string // used to build password reset links

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Quiz engine
	BatchSize        int
	TimeLimit        time.Duration
	PointsPerCorrect int

	// Session storage - Redis when RedisAddr is set, memory otherwise
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	// Notifications - AMQP when AMQPURL is set, log only otherwise
	AMQPURL   string
	AMQPQueue string

	// AI feedback
	OpenAIKey   string
	OpenAIURL   string // OpenAI-compatible endpoint, e.g. "https://api.openai.com"
	OpenAIModel string
}

// MissingError reports a required credential that is not configured. The
// feature depending on it degrades instead of failing the process.
type MissingError struct {
	Key     string
	Feature string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("config: %s is not set; %s is unavailable", e.Key, e.Feature)
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: getDurationDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		DatabasePath:    getenvDefault("DATABASE_PATH", "naijaprep.db"),
		CORSOrigin:      getenvDefault("CORS_ORIGIN", "http://localhost:3000"),
		BaseURL:         getenvDefault("BASE_URL", "http://localhost:8080"),

		JWTSecret: mustGetenv("JWT_SECRET"),
		TokenTTL:  getDurationDefault("TOKEN_TTL", 24*time.Hour),

		BatchSize:        getIntDefault("QUIZ_BATCH_SIZE", quiz.DefaultBatchSize),
		TimeLimit:        getDurationDefault("QUIZ_TIME_LIMIT", quiz.DefaultTimeLimit),
		PointsPerCorrect: getIntDefault("POINTS_PER_CORRECT", 10),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getIntDefault("REDIS_DB", 0),
		SessionTTL:    getDurationDefault("SESSION_TTL", 24*time.Hour),

		AMQPURL:   os.Getenv("AMQP_URL"),
		AMQPQueue: getenvDefault("AMQP_QUEUE", "naijaprep.mail"),

		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIURL:   getenvDefault("OPENAI_URL", "https://api.openai.com"),
		OpenAIModel: getenvDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
	}
}

// RequireOpenAIKey returns a MissingError when AI feedback is not configured.
func (c *Config) RequireOpenAIKey() error {
	if c.OpenAIKey == "" {
		return &MissingError{Key: "OPENAI_API_KEY", Feature: "AI feedback"}
	}
	return nil
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
