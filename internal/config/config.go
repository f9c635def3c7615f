// Package config loads dashboard settings from file, environment and flags through viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Mode selects the front-end variant.
type Mode string

const (
	ModeLive      Mode = "live"
	ModeSimulated Mode = "sim"
	ModeEmulator  Mode = "emulator"
)

// Activity log stores.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Log capacities used when activity.capacity is unset.
const (
	LiveLogCapacity      = 40
	SimulatedLogCapacity = 15
)

const EnvPrefix = "IRRIGATION"

type Config struct {
	Port     string         `mapstructure:"port"`
	Log      LogConfig      `mapstructure:"log"`
	Poll     PollConfig     `mapstructure:"poll"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Sensor   SensorConfig   `mapstructure:"sensor"`
	Zones    ZonesConfig    `mapstructure:"zones"`
	Activity ActivityConfig `mapstructure:"activity"`
	Emulator EmulatorConfig `mapstructure:"emulator"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type BackendConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig guards the backend client. Failures 0 disables the breaker.
type BreakerConfig struct {
	Failures int           `mapstructure:"failures"`
	OpenFor  time.Duration `mapstructure:"open_for"`
}

type SensorConfig struct {
	RawMax float64 `mapstructure:"raw_max"`
}

type ZonesConfig struct {
	Count          int    `mapstructure:"count"`
	InitialPercent int    `mapstructure:"initial_percent"`
	OverridePolicy string `mapstructure:"override_policy"`
}

type ActivityConfig struct {
	Capacity int    `mapstructure:"capacity"`
	Store    string `mapstructure:"store"`
	DSN      string `mapstructure:"dsn"`
}

type EmulatorConfig struct {
	Port             string        `mapstructure:"port"`
	Tick             time.Duration `mapstructure:"tick"`
	WateringDuration time.Duration `mapstructure:"watering_duration"`
}

// MQTTConfig enables device push ingest for simulated zones. An empty broker disables it.
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Topic    string `mapstructure:"topic"`
	QoS      int    `mapstructure:"qos"`
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("poll.interval", 2*time.Second)
	v.SetDefault("backend.url", "http://192.168.4.1")
	v.SetDefault("backend.timeout", 5*time.Second)
	v.SetDefault("backend.breaker.failures", 5)
	v.SetDefault("backend.breaker.open_for", 2*time.Second)
	v.SetDefault("sensor.raw_max", 4095)
	v.SetDefault("zones.count", 3)
	v.SetDefault("zones.initial_percent", 30)
	v.SetDefault("zones.override_policy", "persist")
	v.SetDefault("activity.capacity", 0)
	v.SetDefault("activity.store", StoreMemory)
	v.SetDefault("activity.dsn", "")
	v.SetDefault("emulator.port", "8090")
	v.SetDefault("emulator.tick", time.Second)
	v.SetDefault("emulator.watering_duration", 10*time.Second)
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "irrigation-dashboard")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.topic", "irrigation/zones/+/moisture")
	v.SetDefault("mqtt.qos", 0)
}

// Load unmarshals v for the given mode and validates the result.
func Load(v *viper.Viper, mode Mode) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Activity.Capacity == 0 {
		cfg.Activity.Capacity = DefaultLogCapacity(mode)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultLogCapacity is 40 for the live dashboard and 15 for the simulated one.
func DefaultLogCapacity(mode Mode) int {
	if mode == ModeSimulated {
		return SimulatedLogCapacity
	}
	return LiveLogCapacity
}

var (
	errPollInterval   = errors.New("poll.interval must be > 0")
	errRawMax         = errors.New("sensor.raw_max must be > 0")
	errZoneCount      = errors.New("zones.count must be >= 1")
	errCapacity       = errors.New("activity.capacity must be >= 1")
	errBreakerOpenFor = errors.New("backend.breaker.open_for must be > 0 when the breaker is enabled")
)

func (c Config) Validate() error {
	if c.Poll.Interval <= 0 {
		return errPollInterval
	}
	if c.Sensor.RawMax <= 0 {
		return errRawMax
	}
	if c.Zones.Count < 1 {
		return errZoneCount
	}
	if c.Zones.InitialPercent < 0 || c.Zones.InitialPercent > 100 {
		return fmt.Errorf("zones.initial_percent %d outside [0,100]", c.Zones.InitialPercent)
	}
	switch c.Zones.OverridePolicy {
	case "", "persist", "reset":
	default:
		return fmt.Errorf("zones.override_policy %q: must be persist or reset", c.Zones.OverridePolicy)
	}
	if c.Activity.Capacity < 1 {
		return errCapacity
	}
	if c.Backend.Breaker.Failures > 0 && c.Backend.Breaker.OpenFor <= 0 {
		return errBreakerOpenFor
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos %d outside [0,2]", c.MQTT.QoS)
	}
	switch c.Activity.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("activity.store %q: must be %s or %s", c.Activity.Store, StoreMemory, StoreSQLite)
	}
	return nil
}
