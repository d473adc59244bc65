package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Ledger modes
const (
	LedgerModeMock  = "mock"
	LedgerModeChain = "chain"
)

// Config holds the certificate service configuration.
type Config struct {
	// AWS
	AWSRegion                  string
	AWSAccessKeyID             string
	AWSSecretKey               string
	DynamoDBTableCertificates  string
	DynamoDBVolunteerIndexName string
	DynamoDBEndpoint           string

	// Kafka
	KafkaBootstrapServers string
	KafkaConsumerGroup    string
	KafkaActivityTopic    string
	KafkaCertificateTopic string

	// Ledger
	LedgerMode        string
	AlchemyAPIKey     string
	BlockchainRPCURL  string
	BlockchainNetwork string

	// Server
	ServerPort string
	GinMode    string

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int

	// Verification
	EnableStrictVerification bool
	BlockchainTimeout        int
	MaxRetries               int
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	// .env is only present in development
	_ = godotenv.Load()

	config := &Config{
		// AWS
		AWSRegion:                  getEnvOrDefault("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:             os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:               os.Getenv("AWS_SECRET_ACCESS_KEY"),
		DynamoDBTableCertificates:  getEnvOrDefault("DYNAMODB_TABLE_CERTIFICATES", "volunteer_certificates"),
		DynamoDBVolunteerIndexName: getEnvOrDefault("DYNAMODB_VOLUNTEER_INDEX", "volunteerId-index"),
		DynamoDBEndpoint:           os.Getenv("DYNAMODB_ENDPOINT"),

		// Kafka
		KafkaBootstrapServers: getEnvOrDefault("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"),
		KafkaConsumerGroup:    getEnvOrDefault("KAFKA_CONSUMER_GROUP", "civilsoul-certificates-consumer"),
		KafkaActivityTopic:    getEnvOrDefault("KAFKA_ACTIVITY_TOPIC", "event.volunteering.activity.completed"),
		KafkaCertificateTopic: getEnvOrDefault("KAFKA_CERTIFICATE_TOPIC", "event.certificate"),

		// Ledger
		LedgerMode:        getEnvOrDefault("LEDGER_MODE", LedgerModeChain),
		AlchemyAPIKey:     os.Getenv("ALCHEMY_API_KEY"),
		BlockchainRPCURL:  getEnvOrDefault("BLOCKCHAIN_RPC_URL", ""),
		BlockchainNetwork: getEnvOrDefault("BLOCKCHAIN_NETWORK", "sepolia"),

		// Server
		ServerPort: getEnvOrDefault("SERVER_PORT", "8082"),
		GinMode:    getEnvOrDefault("GIN_MODE", "debug"),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),

		// Verification
		EnableStrictVerification: getEnvAsBool("ENABLE_STRICT_VERIFICATION", true),
		BlockchainTimeout:        getEnvAsInt("BLOCKCHAIN_TIMEOUT", 30),
		MaxRetries:               getEnvAsInt("MAX_RETRIES", 3),
	}

	// Build the blockchain URL when only an Alchemy key is provided
	if config.BlockchainRPCURL == "" && config.AlchemyAPIKey != "" {
		config.BlockchainRPCURL = fmt.Sprintf("https://eth-%s.g.alchemy.com/v2/%s",
			config.BlockchainNetwork, config.AlchemyAPIKey)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// RateLimitPerSecond converts the request budget and its window into the
// per-second refill rate for the limiter. Guards against a zero window and
// never drops below one request per second, since a zero rate would deny
// every request once the burst drains.
func (c *Config) RateLimitPerSecond() int {
	if c.RateLimitRequests <= 0 {
		return 0
	}

	window := c.RateLimitWindow
	if window <= 0 {
		window = 1
	}

	perSecond := c.RateLimitRequests / window
	if perSecond < 1 {
		perSecond = 1
	}
	return perSecond
}

func validateConfig(config *Config) error {
	if config.KafkaBootstrapServers == "" {
		return fmt.Errorf("KAFKA_BOOTSTRAP_SERVERS is required")
	}

	if config.LedgerMode != LedgerModeMock && config.LedgerMode != LedgerModeChain {
		return fmt.Errorf("LEDGER_MODE must be %q or %q", LedgerModeMock, LedgerModeChain)
	}

	if config.LedgerMode == LedgerModeChain && config.BlockchainRPCURL == "" {
		return fmt.Errorf("BLOCKCHAIN_RPC_URL or ALCHEMY_API_KEY is required in chain mode")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
