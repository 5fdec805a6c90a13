package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Ranker    RankerConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	Recommend RecommendConfig
}

type AppConfig struct {
	Name          string
	Port          string
	Debug         bool
	LogPath       string
	StorageDriver string
	NotifyTimeout time.Duration
	CORSOrigins   []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret string
}

// RankerConfig configures the optional external re-ranking call.
// An empty APIKey disables re-ranking.
type RankerConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	TopN        int
	HistorySize int
	CacheTTL    time.Duration
	Temperature float64
	MaxTokens   int
}

func (c RankerConfig) Enabled() bool {
	return c.APIKey != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URL string
}

type RecommendConfig struct {
	DefaultFareMin float64
	DefaultFareMax float64
	MaxCandidates  int
	DefaultLimit   int
	MaxLimit       int
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "trip-marketplace")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STORAGE_DRIVER", "postgres")
	viper.SetDefault("NOTIFY_TIMEOUT", "5s")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("RANKER_BASE_URL", "https://api.groq.com/openai/v1")
	viper.SetDefault("RANKER_MODEL", "llama-3.1-8b-instant")
	viper.SetDefault("RANKER_TIMEOUT", "3s")
	viper.SetDefault("RANKER_TOP_N", 20)
	viper.SetDefault("RANKER_HISTORY", 5)
	viper.SetDefault("RANKER_CACHE_TTL", "2m")
	viper.SetDefault("RANKER_TEMPERATURE", 0.2)
	viper.SetDefault("RANKER_MAX_TOKENS", 500)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RECOMMEND_FARE_MIN", 0)
	viper.SetDefault("RECOMMEND_FARE_MAX", 1000)
	viper.SetDefault("RECOMMEND_MAX_CANDIDATES", 100)
	viper.SetDefault("RECOMMEND_DEFAULT_LIMIT", 10)
	viper.SetDefault("RECOMMEND_MAX_LIMIT", 50)

	// .env is optional in containers where everything comes from the environment
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	rankerKey := viper.GetString("RANKER_API_KEY")
	if rankerKey == "" {
		rankerKey = viper.GetString("GROQ_API_KEY")
	}

	config := &Config{
		App: AppConfig{
			Name:          viper.GetString("APP_NAME"),
			Port:          viper.GetString("PORT"),
			Debug:         viper.GetBool("DEBUG"),
			LogPath:       viper.GetString("LOG_PATH"),
			StorageDriver: viper.GetString("STORAGE_DRIVER"),
			NotifyTimeout: viper.GetDuration("NOTIFY_TIMEOUT"),
			CORSOrigins:   splitList(viper.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Ranker: RankerConfig{
			APIKey:      rankerKey,
			BaseURL:     viper.GetString("RANKER_BASE_URL"),
			Model:       viper.GetString("RANKER_MODEL"),
			Timeout:     viper.GetDuration("RANKER_TIMEOUT"),
			TopN:        viper.GetInt("RANKER_TOP_N"),
			HistorySize: viper.GetInt("RANKER_HISTORY"),
			CacheTTL:    viper.GetDuration("RANKER_CACHE_TTL"),
			Temperature: viper.GetFloat64("RANKER_TEMPERATURE"),
			MaxTokens:   viper.GetInt("RANKER_MAX_TOKENS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: viper.GetString("RABBITMQ_URL"),
		},
		Recommend: RecommendConfig{
			DefaultFareMin: viper.GetFloat64("RECOMMEND_FARE_MIN"),
			DefaultFareMax: viper.GetFloat64("RECOMMEND_FARE_MAX"),
			MaxCandidates:  viper.GetInt("RECOMMEND_MAX_CANDIDATES"),
			DefaultLimit:   viper.GetInt("RECOMMEND_DEFAULT_LIMIT"),
			MaxLimit:       viper.GetInt("RECOMMEND_MAX_LIMIT"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
