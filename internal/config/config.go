package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"safety_monitor/internal/alert"
)

// Config is the application configuration loaded from configs/config.yml,
// .env and SAFETY_* environment variables.
type Config struct {
	Port string `mapstructure:"port"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	Simulator struct {
		Enabled  bool          `mapstructure:"enabled"`
		Interval time.Duration `mapstructure:"interval"`
		Seed     uint64        `mapstructure:"seed"`
	} `mapstructure:"simulator"`

	Location struct {
		Lat float64 `mapstructure:"lat"`
		Lon float64 `mapstructure:"lon"`
	} `mapstructure:"location"`

	Thresholds alert.Thresholds `mapstructure:"thresholds"`

	Locator struct {
		URL     string        `mapstructure:"url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"locator"`

	Redis struct {
		Addr          string `mapstructure:"addr"`
		Password      string `mapstructure:"password"`
		DB            int    `mapstructure:"db"`
		HazardChannel string `mapstructure:"hazard_channel"`
		NotifyChannel string `mapstructure:"notify_channel"`
	} `mapstructure:"redis"`

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

const envPrefix = "SAFETY"

const (
	DefaultDBPath            = "file:audit?mode=memory&cache=shared"
	DefaultSimulatorInterval = 3 * time.Second
)

// Load reads .env (optional), then <dir>/config.yml (optional), applying
// defaults for anything missing.
func Load(dir string) (*Config, error) {
	// a missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Simulator.Interval <= 0 {
		cfg.Simulator.Interval = DefaultSimulatorInterval
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", DefaultDBPath)
	v.SetDefault("simulator.enabled", true)
	v.SetDefault("simulator.interval", DefaultSimulatorInterval)
	v.SetDefault("simulator.seed", 0)
	v.SetDefault("location.lat", 23.8103)
	v.SetDefault("location.lon", 90.4125)
	v.SetDefault("thresholds.alcohol", alert.DefaultAlcoholLimit)
	v.SetDefault("thresholds.gas_ppm", alert.DefaultGasLimitPPM)
	v.SetDefault("thresholds.temperature_c", alert.DefaultTemperatureLimit)
	v.SetDefault("thresholds.aqi", alert.DefaultAQILimit)
	v.SetDefault("thresholds.flame", alert.DefaultFlameLimit)
	v.SetDefault("thresholds.smoke_mg_m3", alert.DefaultSmokeLimit)
	v.SetDefault("locator.url", "")
	v.SetDefault("locator.timeout", 5*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.hazard_channel", "safety:fire")
	v.SetDefault("redis.notify_channel", "safety:sos")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}
