package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Rewards  RewardConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RewardConfig is the static reward lookup table: amounts are
// configuration, never computed.
type RewardConfig struct {
	Currency      string
	AdDefault     float64
	AdByPlatform  map[string]float64
	LinkView      float64
	ReferralBonus float64
	ActivationFee float64
}

// AdAmount returns the reward for watching an ad on the given platform.
func (r RewardConfig) AdAmount(platform string) float64 {
	if amount, ok := r.AdByPlatform[platform]; ok {
		return amount
	}
	return r.AdDefault
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "referwin"),
			Password: getEnv("DB_PASSWORD", "referwin"),
			Name:     getEnv("DB_NAME", "referwin"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Rewards: RewardConfig{
			Currency:  getEnv("REWARD_CURRENCY", "GHS"),
			AdDefault: getEnvFloat("REWARD_AD_DEFAULT", 0.15),
			AdByPlatform: map[string]float64{
				"youtube":   getEnvFloat("REWARD_AD_YOUTUBE", 0.20),
				"instagram": getEnvFloat("REWARD_AD_INSTAGRAM", 0.20),
			},
			LinkView:      getEnvFloat("REWARD_LINK_VIEW", 0.05),
			ReferralBonus: getEnvFloat("REWARD_REFERRAL_BONUS", 10),
			ActivationFee: getEnvFloat("ACTIVATION_FEE", 70),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Notification retention: how many recent notifications to keep when
// trimming old ones.
const DefaultNotificationKeep = 50

// Leaderboard size returned when the caller does not ask for a limit.
const DefaultLeaderboardLimit = 10
