package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"botcoin/internal/errors"
	"botcoin/internal/logging"
	"botcoin/internal/strategy"
)

type Mode string

const (
	ModeDryRun Mode = "dry-run"
	ModeTrade  Mode = "trade"
)

const (
	VenueREST   = "rest"
	VenueAlpaca = "alpaca"

	LockMemory = "memory"
	LockRedis  = "redis"
)

type Config struct {
	Mode     Mode           `yaml:"mode" default:"dry-run" validate:"oneof=dry-run trade"`
	Venue    Venue          `yaml:"venue"`
	Strategy Strategy       `yaml:"strategy"`
	Schedule Schedule       `yaml:"schedule"`
	Risk     Risk           `yaml:"risk"`
	Server   Server         `yaml:"server"`
	Lock     Lock           `yaml:"lock"`
	Log      logging.Config `yaml:"log"`
}

type Venue struct {
	Type             string        `yaml:"type" default:"rest" validate:"oneof=rest alpaca"`
	BaseURL          string        `yaml:"base_url" default:"http://oec-2018.herokuapp.com" validate:"required,url"`
	APIKey           string        `yaml:"api_key"`
	Timeout          time.Duration `yaml:"timeout" default:"10s" validate:"gt=0"`
	FetchConcurrency int           `yaml:"fetch_concurrency" default:"8" validate:"gte=1"`
	Alpaca           Alpaca        `yaml:"alpaca"`
}

type Alpaca struct {
	APIKey    string        `yaml:"api_key"`
	APISecret string        `yaml:"api_secret"`
	BaseURL   string        `yaml:"base_url" default:"https://paper-api.alpaca.markets" validate:"required,url"`
	DataURL   string        `yaml:"data_url" validate:"omitempty,url"`
	Feed      string        `yaml:"feed" default:"iex" validate:"oneof=iex sip"`
	Timeframe string        `yaml:"timeframe" default:"1Min" validate:"oneof=1Min 1Hour 1Day"`
	Lookback  time.Duration `yaml:"lookback" default:"168h" validate:"gt=0"`
	Symbols   []string      `yaml:"symbols"`
}

type Strategy struct {
	ShortWindow    int     `yaml:"short_window" default:"30" validate:"gte=2"`
	LongWindow     int     `yaml:"long_window" default:"100" validate:"gtefield=ShortWindow"`
	ShortWeight    float64 `yaml:"short_weight" default:"0.8"`
	LongWeight     float64 `yaml:"long_weight" default:"0.2"`
	BuyCount       int     `yaml:"buy_count" default:"6" validate:"gte=0"`
	SellCount      int     `yaml:"sell_count" default:"15" validate:"gte=0"`
	MaxVolume      int     `yaml:"max_volume" default:"3" validate:"gte=1"`
	SlopePrecision int32   `yaml:"slope_precision" default:"2"`
	NetOrders      bool    `yaml:"net_orders"`
}

type Schedule struct {
	Interval     time.Duration `yaml:"interval" default:"60s" validate:"gt=0"`
	CycleTimeout time.Duration `yaml:"cycle_timeout" default:"50s" validate:"gt=0"`
}

type Risk struct {
	KillSwitch bool `yaml:"kill_switch"`
}

type Server struct {
	Enabled         bool          `yaml:"enabled" default:"true"`
	Port            int           `yaml:"port" default:"3000" validate:"gte=1,lte=65535"`
	Greeting        string        `yaml:"greeting" default:"Hello Botcoin Server!"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"5s" validate:"gt=0"`
}

type Lock struct {
	Backend string `yaml:"backend" default:"memory" validate:"oneof=memory redis"`
	Redis   Redis  `yaml:"redis"`
}

type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db" validate:"gte=0"`
	Key      string        `yaml:"key" default:"botcoin:cycle"`
	TTL      time.Duration `yaml:"ttl" default:"5m" validate:"gt=0"`
}

// Overrides carries values given on the command line. Empty fields are ignored.
type Overrides struct {
	Mode  string
	Venue string
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any), then .env and environment variables, then overrides.
func Load(path string, overrides Overrides) (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return cfg, fmt.Errorf("apply defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if overrides.Mode != "" {
		cfg.Mode = Mode(overrides.Mode)
	}
	if overrides.Venue != "" {
		cfg.Venue.Type = overrides.Venue
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("BOTCOIN_MODE"); v != "" {
		cfg.Mode = Mode(v)
	}
	if v := os.Getenv("BOTCOIN_VENUE"); v != "" {
		cfg.Venue.Type = v
	}
	if v := os.Getenv("BOTCOIN_API_KEY"); v != "" {
		cfg.Venue.APIKey = v
	}
	if v := os.Getenv("BOTCOIN_BASE_URL"); v != "" {
		cfg.Venue.BaseURL = v
	}
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Venue.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Venue.Alpaca.APISecret = v
	}
	if v := os.Getenv("BOTCOIN_SYMBOLS"); v != "" {
		cfg.Venue.Alpaca.Symbols = splitList(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Lock.Redis.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(errors.CodeInvalidConfiguration, err, "invalid PORT %q", v)
		}
		cfg.Server.Port = port
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var structValidator = validator.New()

func validate(cfg Config) error {
	if err := structValidator.Struct(cfg); err != nil {
		return errors.Wrap(errors.CodeInvalidConfiguration, "invalid config", err)
	}
	switch cfg.Venue.Type {
	case VenueREST:
		if cfg.Venue.APIKey == "" {
			return errors.New(errors.CodeInvalidConfiguration, "venue.api_key (or BOTCOIN_API_KEY) is required for the rest venue")
		}
	case VenueAlpaca:
		if cfg.Venue.Alpaca.APIKey == "" || cfg.Venue.Alpaca.APISecret == "" {
			return errors.New(errors.CodeInvalidConfiguration, "APCA_API_KEY_ID and APCA_API_SECRET_KEY are required for the alpaca venue")
		}
		if len(cfg.Venue.Alpaca.Symbols) == 0 {
			return errors.New(errors.CodeInvalidConfiguration, "venue.alpaca.symbols cannot be empty")
		}
	}
	if cfg.Lock.Backend == LockRedis && cfg.Lock.Redis.Addr == "" {
		return errors.New(errors.CodeInvalidConfiguration, "lock.redis.addr is required for the redis lock")
	}
	return nil
}

// Params converts the strategy section into strategy parameters.
func (s Strategy) Params() strategy.Params {
	return strategy.Params{
		ShortWindow: s.ShortWindow,
		LongWindow:  s.LongWindow,
		ShortWeight: s.ShortWeight,
		LongWeight:  s.LongWeight,
		BuyCount:    s.BuyCount,
		SellCount:   s.SellCount,
		MaxVolume:   s.MaxVolume,
		Precision:   s.SlopePrecision,
	}
}
