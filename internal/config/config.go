package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	MongoDB      MongoDBConfig
	JWT          JWTConfig
	Challenge    ChallengeConfig
	Lock         LockConfig
	Distribution DistributionConfig
	LogLevel     string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// ChallengeConfig holds global challenge configuration. Durations and
// progress targets are configured independently per track; the track labels
// carry no unit semantics.
type ChallengeConfig struct {
	ScanInterval       time.Duration
	ShortDuration      time.Duration
	LongDuration       time.Duration
	ShortTargetMinutes int
	LongTargetMinutes  int
	DefaultShortReward string
	DefaultLongReward  string
}

// LockConfig holds the reward-locking defaults used when no lock settings
// exist in the database
type LockConfig struct {
	DefaultPercentage int
	DefaultDays       int
}

// DistributionConfig holds token distribution gateway configuration
type DistributionConfig struct {
	BaseURL      string
	AuthorityKey string
	Mock         bool
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "shsy-staking")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Challenge.ScanInterval", "30s")
	viper.SetDefault("Challenge.ShortDuration", "240h") // 10 days
	viper.SetDefault("Challenge.LongDuration", "720h")  // 30 days
	viper.SetDefault("Challenge.ShortTargetMinutes", 14400)
	viper.SetDefault("Challenge.LongTargetMinutes", 43200)
	viper.SetDefault("Challenge.DefaultShortReward", "20")
	viper.SetDefault("Challenge.DefaultLongReward", "45")
	viper.SetDefault("Lock.DefaultPercentage", 25)
	viper.SetDefault("Lock.DefaultDays", 30)
	viper.SetDefault("Distribution.Mock", true)
	viper.SetDefault("LogLevel", "info")
}
