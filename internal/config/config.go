package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Log    LogConfig
	Map    MapConfig
	Events EventsConfig
	Worker WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
	// CORSOrigins - список origin через запятую
	CORSOrigins string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

// MapConfig - начальное положение карты и размер окна
type MapConfig struct {
	CenterX        float64
	CenterY        float64
	Zoom           float64
	MinZoom        float64
	MaxZoom        float64
	ViewportWidth  int
	ViewportHeight int
	// AutoPanDuration - длительность анимации попапа
	AutoPanDuration time.Duration
}

// EventsConfig - публикация событий маркеров в Redis Streams
type EventsConfig struct {
	Enabled bool
	Stream  string
	// MaxLen - примерная максимальная длина стрима, 0 без ограничения
	MaxLen int64
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	// PollInterval - пауза между опросами пустого стрима
	PollInterval time.Duration
	BatchSize    int
	// ReadMode - batch (опрос ConsumeBatch) или stream (блокирующий XREADGROUP)
	ReadMode string
	// BlockTimeout - время ожидания XREADGROUP в режиме stream
	BlockTimeout time.Duration
}

func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из файла и окружения; отсутствие файла не ошибка
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),

			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Map: MapConfig{
			CenterX:         v.GetFloat64("MAP_CENTER_X"),
			CenterY:         v.GetFloat64("MAP_CENTER_Y"),
			Zoom:            v.GetFloat64("MAP_ZOOM"),
			MinZoom:         v.GetFloat64("MAP_MIN_ZOOM"),
			MaxZoom:         v.GetFloat64("MAP_MAX_ZOOM"),
			ViewportWidth:   v.GetInt("MAP_VIEWPORT_WIDTH"),
			ViewportHeight:  v.GetInt("MAP_VIEWPORT_HEIGHT"),
			AutoPanDuration: time.Duration(v.GetInt("MAP_AUTOPAN_DURATION")) * time.Millisecond,
		},
		Events: EventsConfig{
			Enabled: v.GetBool("EVENTS_ENABLED"),
			Stream:  v.GetString("EVENTS_STREAM"),
			MaxLen:  v.GetInt64("EVENTS_MAX_LEN"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			PollInterval:  time.Duration(v.GetInt("WORKER_POLL_INTERVAL")) * time.Millisecond,
			BatchSize:     v.GetInt("WORKER_BATCH_SIZE"),
			ReadMode:      v.GetString("WORKER_READ_MODE"),
			BlockTimeout:  time.Duration(v.GetInt("WORKER_BLOCK_TIMEOUT")) * time.Millisecond,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("MAP_CENTER_X", 4420570.3290049005)
	v.SetDefault("MAP_CENTER_Y", 5981353.3434550995)
	v.SetDefault("MAP_ZOOM", 16)
	v.SetDefault("MAP_MIN_ZOOM", 1)
	v.SetDefault("MAP_MAX_ZOOM", 17)
	v.SetDefault("MAP_VIEWPORT_WIDTH", 1280)
	v.SetDefault("MAP_VIEWPORT_HEIGHT", 800)
	v.SetDefault("MAP_AUTOPAN_DURATION", 250)

	v.SetDefault("EVENTS_ENABLED", false)
	v.SetDefault("EVENTS_STREAM", "stream:marker:events")
	v.SetDefault("EVENTS_MAX_LEN", 10000)

	v.SetDefault("WORKER_ENABLED", false)
	v.SetDefault("WORKER_CONSUMER_GROUP", "marker-event-log")
	v.SetDefault("WORKER_POLL_INTERVAL", 100)
	v.SetDefault("WORKER_BATCH_SIZE", 20)
	v.SetDefault("WORKER_READ_MODE", "batch")
	v.SetDefault("WORKER_BLOCK_TIMEOUT", 1000)
}

func (c *Config) validate() error {
	if c.Map.MinZoom > c.Map.MaxZoom {
		return fmt.Errorf("MAP_MIN_ZOOM (%v) is greater than MAP_MAX_ZOOM (%v)", c.Map.MinZoom, c.Map.MaxZoom)
	}
	if c.Map.Zoom < c.Map.MinZoom || c.Map.Zoom > c.Map.MaxZoom {
		return fmt.Errorf("MAP_ZOOM (%v) is outside [%v, %v]", c.Map.Zoom, c.Map.MinZoom, c.Map.MaxZoom)
	}
	if c.Worker.BatchSize <= 0 {
		return fmt.Errorf("WORKER_BATCH_SIZE must be positive, got %d", c.Worker.BatchSize)
	}
	if c.Worker.ReadMode != "batch" && c.Worker.ReadMode != "stream" {
		return fmt.Errorf("WORKER_READ_MODE must be batch or stream, got %q", c.Worker.ReadMode)
	}
	if c.Worker.BlockTimeout <= 0 {
		return fmt.Errorf("WORKER_BLOCK_TIMEOUT must be positive, got %v", c.Worker.BlockTimeout)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
