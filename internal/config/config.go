package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	S3       S3Config       `mapstructure:"s3"`
	Photo    PhotoConfig    `mapstructure:"photo"`
	Log      LogConfig      `mapstructure:"log"`
	Locale   LocaleConfig   `mapstructure:"locale"`
}

// Storage backends.
const (
	BackendBolt   = "bolt"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

// Photo encoders.
const (
	EncoderDataURL = "dataurl"
	EncoderS3      = "s3"
)

type StorageConfig struct {
	Backend   string `mapstructure:"backend"`
	Path      string `mapstructure:"path"` // bolt database file
	KeyPrefix string `mapstructure:"key_prefix"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// PhotoConfig selects how profile photos are turned into stored handles.
type PhotoConfig struct {
	Encoder  string `mapstructure:"encoder"`
	MaxBytes int64  `mapstructure:"max_bytes"` // 0 = unlimited
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	File     string `mapstructure:"file"`
	ToStdout bool   `mapstructure:"to_stdout"`
	JSON     bool   `mapstructure:"json"`
}

// LocaleConfig controls the timezone dates and times are rendered in.
type LocaleConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// LoadConfig reads configuration from file or environment variables.
// The file is "config.yaml" under path, or exactly path when it names a file.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(path)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Use replacer for nested keys e.g., storage.backend -> STORAGE_BACKEND
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("storage.backend", BackendBolt)
	v.SetDefault("storage.path", "loadx.db")
	v.SetDefault("storage.key_prefix", "")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "loadx")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("photo.encoder", EncoderDataURL)
	v.SetDefault("photo.max_bytes", 5<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.to_stdout", false)
	v.SetDefault("log.json", false)
	v.SetDefault("locale.timezone", "America/Sao_Paulo")

	err = v.ReadInConfig()
	// A missing config file is fine, defaults and env vars still apply.
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	return config, config.Validate()
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendBolt, BackendMemory, BackendMongo, BackendRedis:
	default:
		return errors.New("storage.backend must be one of bolt, memory, mongo, redis")
	}
	if c.Storage.Backend == BackendBolt && strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage.path is required for the bolt backend")
	}
	switch c.Photo.Encoder {
	case EncoderDataURL, EncoderS3:
	default:
		return errors.New("photo.encoder must be one of dataurl, s3")
	}
	if c.Photo.MaxBytes < 0 {
		return errors.New("photo.max_bytes cannot be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return errors.New("log.level must be one of trace, debug, info, warn, error, fatal")
	}
	return nil
}
