package models

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	JWT       JWTConfig
	APIKey    APIKeyConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
	Directory DirectoryConfig
	Providers ProvidersConfig
	Scheduler SchedulerConfig
}

// LoggerConfig contains structured logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
	BaseURL     string // public base URL providers use for callbacks
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT verification configuration.
// Tokens are issued by the external identity service; this engine only
// validates them.
type JWTConfig struct {
	Secret string
	Issuer string
}

// APIKeyConfig contains API keys for internal service-to-service routes
type APIKeyConfig struct {
	AdminKey string
}

// NewRelicConfig contains New Relic observability configuration
type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// DirectoryConfig contains the property directory collaborator settings
type DirectoryConfig struct {
	BaseURL string
	Timeout int // in seconds
}

// ProvidersConfig groups payment provider credentials
type ProvidersConfig struct {
	Flutterwave FlutterwaveConfig
	Mpesa       MpesaConfig
	Airtel      AirtelConfig
}

// FlutterwaveConfig contains the redirect-gateway provider settings
type FlutterwaveConfig struct {
	BaseURL     string
	SecretKey   string
	WebhookHash string // value expected in the verif-hash callback header
	RedirectURL string // where the gateway sends the tenant after payment
	Timeout     int    // in seconds
}

// MpesaConfig contains the M-Pesa STK push provider settings
type MpesaConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	PassKey        string
	CallbackSecret string
	Timeout        int // in seconds
}

// AirtelConfig contains the Airtel Money push provider settings
type AirtelConfig struct {
	BaseURL       string
	ClientID      string
	ClientSecret  string
	WebhookSecret string // HMAC key for callback signatures
	Timeout       int    // in seconds
}

// SchedulerConfig contains the background sweep configuration.
// The renewal window and cadence are deployment decisions, not business
// rules, so they stay configurable.
type SchedulerConfig struct {
	SweepInterval     int // minutes between sweeps
	HoldTTL           int // hours a pending reservation is held before expiry
	RenewalWindowDays int // days before end_date an occupancy becomes expiring
	BatchSize         int // max rows touched per sweep
	VerifyAfter       int // minutes an initiated transaction waits before verify
}
