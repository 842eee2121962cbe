package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	BucketImages string
	BucketVideos string
	UseSSL       bool
	Region       string
}

type SessionConfig struct {
	JWTSecret string
	TTL       time.Duration
	AdminName string
}

type GeoConfig struct {
	LookupURL   string
	FlagURLBase string
	Timeout     time.Duration
}

type MediaConfig struct {
	MaxVideoDuration time.Duration
	MaxUploadBytes   int64
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Session          SessionConfig
	Geo              GeoConfig
	Media            MediaConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("GOLDCONNECT")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	// Write timeout stays unset: the message stream endpoint holds its
	// response open indefinitely.
	v.SetDefault("http.writetimeout", "0s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.bucketimages", "goldconnect-images")
	v.SetDefault("storage.bucketvideos", "goldconnect-videos")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("session.ttl", "720h") // 30 days
	v.SetDefault("session.adminname", "admin1234")

	v.SetDefault("geo.lookupurl", "https://api.country.is")
	v.SetDefault("geo.flagurlbase", "https://flagsapi.com")
	v.SetDefault("geo.timeout", "3s")

	v.SetDefault("media.maxvideoduration", "180s")
	v.SetDefault("media.maxuploadbytes", 52428800) // 50 MiB
}
