package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mwangi/kodisha/internal/pkg/models"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "kodisha-engine")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")
	configs.App.BaseURL = GetEnv("APP_BASE_URL", "http://localhost:9990")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9980)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "postgres")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")

	// API key config
	configs.APIKey.AdminKey = GetEnv("ADMIN_API_KEY", "")

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", configs.App.Name)
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)

	// Property directory config
	configs.Directory.BaseURL = GetEnv("DIRECTORY_SERVICE_URL", "http://localhost:9970")
	configs.Directory.Timeout = GetEnvAsInt("DIRECTORY_TIMEOUT", 10)

	// Provider config
	configs.Providers.Flutterwave.BaseURL = GetEnv("FLUTTERWAVE_BASE_URL", "https://api.flutterwave.com/v3")
	configs.Providers.Flutterwave.SecretKey = GetEnv("FLUTTERWAVE_SECRET_KEY", "")
	configs.Providers.Flutterwave.WebhookHash = GetEnv("FLUTTERWAVE_WEBHOOK_HASH", "")
	configs.Providers.Flutterwave.RedirectURL = GetEnv("FLUTTERWAVE_REDIRECT_URL", "")
	configs.Providers.Flutterwave.Timeout = GetEnvAsInt("FLUTTERWAVE_TIMEOUT", 15)

	configs.Providers.Mpesa.BaseURL = GetEnv("MPESA_BASE_URL", "")
	configs.Providers.Mpesa.ConsumerKey = GetEnv("MPESA_CONSUMER_KEY", "")
	configs.Providers.Mpesa.ConsumerSecret = GetEnv("MPESA_CONSUMER_SECRET", "")
	configs.Providers.Mpesa.ShortCode = GetEnv("MPESA_SHORT_CODE", "")
	configs.Providers.Mpesa.PassKey = GetEnv("MPESA_PASS_KEY", "")
	configs.Providers.Mpesa.CallbackSecret = GetEnv("MPESA_CALLBACK_SECRET", "")
	configs.Providers.Mpesa.Timeout = GetEnvAsInt("MPESA_TIMEOUT", 15)

	configs.Providers.Airtel.BaseURL = GetEnv("AIRTEL_BASE_URL", "")
	configs.Providers.Airtel.ClientID = GetEnv("AIRTEL_CLIENT_ID", "")
	configs.Providers.Airtel.ClientSecret = GetEnv("AIRTEL_CLIENT_SECRET", "")
	configs.Providers.Airtel.WebhookSecret = GetEnv("AIRTEL_WEBHOOK_SECRET", "")
	configs.Providers.Airtel.Timeout = GetEnvAsInt("AIRTEL_TIMEOUT", 15)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	// Scheduler config
	configs.Scheduler.SweepInterval = GetEnvAsInt("SCHEDULER_SWEEP_INTERVAL", 5)
	configs.Scheduler.HoldTTL = GetEnvAsInt("SCHEDULER_HOLD_TTL", 24)
	configs.Scheduler.RenewalWindowDays = GetEnvAsInt("SCHEDULER_RENEWAL_WINDOW_DAYS", 7)
	configs.Scheduler.BatchSize = GetEnvAsInt("SCHEDULER_BATCH_SIZE", 100)
	configs.Scheduler.VerifyAfter = GetEnvAsInt("SCHEDULER_VERIFY_AFTER", 10)

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
