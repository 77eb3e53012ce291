package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig
	Logging    LoggingConfig
	EventBus   EventBusConfig
	Simulation SimulationConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
}

type LoggingConfig struct {
	Level string
}

type EventBusConfig struct {
	ChannelBufferSize int
	MaxRetries        int
}

// SimulationConfig controls the replayed dataset and how the clock is driven.
type SimulationConfig struct {
	Seed           uint32
	TickInterval   time.Duration
	MinutesPerTick float64
	Speed          float64
	AlertThreshold float64
	Autostart      bool
}

// scenarioFile is the YAML overlay for SimulationConfig. Absent keys keep the
// environment value.
type scenarioFile struct {
	Simulation struct {
		Seed           *uint32        `yaml:"seed"`
		TickInterval   *time.Duration `yaml:"tick_interval"`
		MinutesPerTick *float64       `yaml:"minutes_per_tick"`
		Speed          *float64       `yaml:"speed"`
		AlertThreshold *float64       `yaml:"alert_threshold"`
		Autostart      *bool          `yaml:"autostart"`
	} `yaml:"simulation"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		EventBus: EventBusConfig{
			ChannelBufferSize: getIntEnv("EVENT_CHANNEL_BUFFER_SIZE", 256),
			MaxRetries:        getIntEnv("EVENT_MAX_RETRIES", 3),
		},
		Simulation: SimulationConfig{
			Seed:           getUint32Env("SIM_SEED", 42),
			TickInterval:   getDurationEnv("SIM_TICK_INTERVAL", 3*time.Second),
			MinutesPerTick: getFloatEnv("SIM_MINUTES_PER_TICK", 1),
			Speed:          getFloatEnv("SIM_SPEED", 1),
			AlertThreshold: getFloatEnv("SIM_ALERT_THRESHOLD", 0.80),
			Autostart:      getBoolEnv("SIM_AUTOSTART", true),
		},
	}

	if path := os.Getenv("SCENARIO_FILE"); path != "" {
		if err := ApplyScenario(path, &cfg.Simulation); err != nil {
			log.Printf("Ignoring scenario file %s: %v", path, err)
		}
	}

	return cfg
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ApplyScenario overlays the simulation section of the YAML file at path onto
// sim. sim is left untouched when the file cannot be read or parsed.
func ApplyScenario(path string, sim *SimulationConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse scenario: %w", err)
	}

	s := file.Simulation
	if s.Seed != nil {
		sim.Seed = *s.Seed
	}
	if s.TickInterval != nil {
		sim.TickInterval = *s.TickInterval
	}
	if s.MinutesPerTick != nil {
		sim.MinutesPerTick = *s.MinutesPerTick
	}
	if s.Speed != nil {
		sim.Speed = *s.Speed
	}
	if s.AlertThreshold != nil {
		sim.AlertThreshold = *s.AlertThreshold
	}
	if s.Autostart != nil {
		sim.Autostart = *s.Autostart
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

func getUint32Env(key string, defaultValue uint32) uint32 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseUint(valueStr, 10, 32)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return uint32(value)
}

func getFloatEnv(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %g", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}
