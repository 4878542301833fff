package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Render    RenderConfig
	Retention RetentionConfig
	Supabase  SupabaseConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
}

type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	CORSOrigins    []string
	TrustedProxies []string
	PublicPrefix   string
	Debug          bool
}

type RenderConfig struct {
	AssetDir  string
	FontPath  string
	ImageDir  string
	PublicDir string
	DPI       float64
}

type RetentionConfig struct {
	MaxAge        time.Duration
	SweepInterval time.Duration
}

type SupabaseConfig struct {
	URL    string
	KEY    string
	BUCKET string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
	JobTTL   time.Duration
}

type RabbitMQConfig struct {
	URL     string
	Queue   string
	Workers int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			ReadTimeout:    getDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getDuration("WRITE_TIMEOUT", 60*time.Second),
			CORSOrigins:    getEnvAsList("CORS_ORIGINS", []string{"*"}),
			TrustedProxies: getEnvAsList("TRUSTED_PROXIES", nil),
			PublicPrefix:   getEnv("PUBLIC_URL_PREFIX", "/public"),
			Debug:          getEnvAsBool("DEBUG", false),
		},
		Render: RenderConfig{
			AssetDir:  getEnv("ASSET_DIR", "./asset"),
			FontPath:  getEnv("FONT_PATH", "./fonts/Coke-Regular.otf"),
			ImageDir:  getEnv("IMAGE_OUTPUT_DIR", "./output_can"),
			PublicDir: getEnv("PUBLIC_DIR", "./public"),
			DPI:       getEnvAsFloat("RENDER_DPI", 300),
		},
		Retention: RetentionConfig{
			MaxAge:        getDuration("OUTPUT_RETENTION", 72*time.Hour),
			SweepInterval: getDuration("OUTPUT_SWEEP_INTERVAL", time.Hour),
		},
		Supabase: SupabaseConfig{
			URL:    getEnv("SUPABASE_URL", ""),
			KEY:    getEnv("SUPABASE_KEY", ""),
			BUCKET: getEnv("SUPABASE_BUCKET", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getDuration("CACHE_TTL", time.Hour),
			JobTTL:   getDuration("JOB_TTL", 24*time.Hour),
		},
		RabbitMQ: RabbitMQConfig{
			URL:     getEnv("RABBITMQ_URL", ""),
			Queue:   getEnv("RABBITMQ_QUEUE", "label_generation"),
			Workers: getEnvAsInt("QUEUE_WORKERS", 2),
		},
	}

	return cfg, nil
}

// SupabaseEnabled reports whether PDFs should be mirrored to a bucket.
func (c *Config) SupabaseEnabled() bool {
	return c.Supabase.URL != "" && c.Supabase.KEY != "" && c.Supabase.BUCKET != ""
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

func (c *Config) QueueEnabled() bool {
	return c.RabbitMQ.URL != ""
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil && floatVal > 0 {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultVal
	}
	return items
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}
