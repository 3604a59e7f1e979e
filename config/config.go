package config

import (
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBUrl         string
	JWTSecret     string
	RedisAddr     string
	RedisPassword string
	LogLevel      string
	// GameSeed fixes the random source for placement and targeting; 0
	// seeds from the clock.
	GameSeed int64
}

func LoadConfig() Config {
	err := godotenv.Load()

	if err != nil {
		log.Info("No .env file found. Using environment variables.")
	}

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DBUrl:         os.Getenv("DB_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if seed := os.Getenv("GAME_SEED"); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			log.Warn("Ignoring invalid GAME_SEED", "value", seed, "err", err)
		} else {
			cfg.GameSeed = n
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewRand returns the random source handed to the game engine.
func (c Config) NewRand() *rand.Rand {
	seed := c.GameSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func NewLogger(cfg Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("Unknown log level, using info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
