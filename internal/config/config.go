package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Auth         AuthConfig
	Database     DatabaseConfig
	Cache        CacheConfig
	Storage      StorageConfig
	Forecast     ForecastConfig
	Optimization OptimizationConfig
}

type AuthConfig struct {
	JWTSecret string
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type ForecastConfig struct {
	ModelURL       string
	TimeoutSeconds int
}

// OptimizationConfig holds the default knobs for the reorder engine.
// Every value can still be overridden per request.
type OptimizationConfig struct {
	LeadTimeDays      int
	ServiceLevel      float64
	OrderingCost      float64
	HoldingCostRate   float64
	DefaultUnitCost   float64
	CategoryUnitCosts map[string]float64
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("AUTH_JWT_SECRET", "")
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "retail_optimizer")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_REPORT_TTL_SECONDS", 60)
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "optimization-reports")
		viper.SetDefault("STORAGE_REGION", "us-east-1")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("FORECAST_MODEL_URL", "http://localhost:9000/predict")
		viper.SetDefault("FORECAST_TIMEOUT_SECONDS", 30)
		viper.SetDefault("OPT_LEAD_TIME_DAYS", 7)
		viper.SetDefault("OPT_SERVICE_LEVEL", 0.95)
		viper.SetDefault("OPT_ORDERING_COST", 50.0)
		viper.SetDefault("OPT_HOLDING_COST_RATE", 0.25)
		viper.SetDefault("OPT_DEFAULT_UNIT_COST", 10.0)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Auth: AuthConfig{
				JWTSecret: viper.GetString("AUTH_JWT_SECRET"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ReportTTLSeconds: viper.GetInt("CACHE_REPORT_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
			Forecast: ForecastConfig{
				ModelURL:       viper.GetString("FORECAST_MODEL_URL"),
				TimeoutSeconds: viper.GetInt("FORECAST_TIMEOUT_SECONDS"),
			},
			Optimization: OptimizationConfig{
				LeadTimeDays:    viper.GetInt("OPT_LEAD_TIME_DAYS"),
				ServiceLevel:    viper.GetFloat64("OPT_SERVICE_LEVEL"),
				OrderingCost:    viper.GetFloat64("OPT_ORDERING_COST"),
				HoldingCostRate: viper.GetFloat64("OPT_HOLDING_COST_RATE"),
				DefaultUnitCost: viper.GetFloat64("OPT_DEFAULT_UNIT_COST"),
				CategoryUnitCosts: map[string]float64{
					"Electronics": 100,
					"Clothing":    30,
					"Food":        5,
				},
			},
		}
	})

	return instance
}
