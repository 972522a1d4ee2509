package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/distributed-mis/pkg/mis"
)

// Algorithm selects which of the three strategies a run uses. A run never
// mixes algorithms across nodes, per the single-shell-plus-strategy design.
type Algorithm string

const (
	AlgorithmSlowMIS        Algorithm = "slow-mis"
	AlgorithmFastMIS        Algorithm = "fast-mis"
	AlgorithmDesireLevelMIS Algorithm = "desire-level-mis"
)

type Config struct {
	MachineID     string    `yaml:"machine_id"`
	Port          int       `yaml:"port"`
	IsCoordinator bool      `yaml:"is_coordinator"`
	Coordinator   string    `yaml:"coordinator,omitempty"`
	Algorithm     Algorithm `yaml:"algorithm"`
	Timing        Timing    `yaml:"timing"`
	Network       Network   `yaml:"network"`
	DataPath      string    `yaml:"data_path"`
}

// Timing carries every per-algorithm delay the host can tune. Fields
// unused by the selected Algorithm are simply ignored.
type Timing struct {
	InitialStartDelay    time.Duration `yaml:"initial_start_delay"`
	PhaseInterval        time.Duration `yaml:"phase_interval"`
	RandomValueSendDelay time.Duration `yaml:"random_value_send_delay"`
	RoundInterval        time.Duration `yaml:"round_interval"`
	DesireLevelSendDelay time.Duration `yaml:"desire_level_send_delay"`
	DiscoveryTimeout     time.Duration `yaml:"discovery_timeout"`
	CheckInterval        time.Duration `yaml:"check_interval"`
}

type Network struct {
	Peers []Peer `yaml:"peers"`
}

type Peer struct {
	ID      string `yaml:"id"`
	Address string `yaml:"address"`
}

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MachineID == "" {
		return fmt.Errorf("machine_id is required")
	}
	switch c.Algorithm {
	case AlgorithmSlowMIS, AlgorithmFastMIS, AlgorithmDesireLevelMIS:
	default:
		return fmt.Errorf("unknown algorithm %q", c.Algorithm)
	}
	if !c.IsCoordinator && c.Coordinator == "" {
		return fmt.Errorf("coordinator address is required when not running as coordinator")
	}
	if c.IsCoordinator && c.Coordinator != "" {
		return fmt.Errorf("cannot specify coordinator address when running as coordinator")
	}
	return nil
}

// NewStrategy builds the Strategy this config names, fresh for nodeID.
// Every node gets its own instance even though the parameters are shared,
// since strategies hold per-node-instance state.
func (c *Config) NewStrategy(nodeID int) (mis.Strategy, error) {
	switch c.Algorithm {
	case AlgorithmSlowMIS:
		if c.Timing.DiscoveryTimeout > 0 {
			return mis.NewSlowMISStrategyWithDiscovery(c.Timing.DiscoveryTimeout, c.Timing.CheckInterval), nil
		}
		return mis.NewSlowMISStrategy(), nil
	case AlgorithmFastMIS:
		return mis.NewFastMISStrategy(c.Timing.InitialStartDelay, c.Timing.PhaseInterval, c.Timing.RandomValueSendDelay), nil
	case AlgorithmDesireLevelMIS:
		return mis.NewDesireLevelStrategy(c.Timing.InitialStartDelay, c.Timing.RoundInterval, c.Timing.DesireLevelSendDelay), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q for node %d", c.Algorithm, nodeID)
	}
}

func LoadConfigFromEnv() *Config {
	return &Config{
		MachineID:     getEnv("MACHINE_ID", ""),
		Port:          getEnvInt("PORT", 8080),
		IsCoordinator: getEnvBool("IS_COORDINATOR", false),
		Coordinator:   getEnv("COORDINATOR", ""),
		Algorithm:     Algorithm(getEnv("ALGORITHM", string(AlgorithmFastMIS))),
		Timing: Timing{
			InitialStartDelay:    getEnvDuration("INITIAL_START_DELAY", 100*time.Millisecond),
			PhaseInterval:        getEnvDuration("PHASE_INTERVAL", 500*time.Millisecond),
			RandomValueSendDelay: getEnvDuration("RANDOM_VALUE_SEND_DELAY", 50*time.Millisecond),
			RoundInterval:        getEnvDuration("ROUND_INTERVAL", 500*time.Millisecond),
			DesireLevelSendDelay: getEnvDuration("DESIRE_LEVEL_SEND_DELAY", 50*time.Millisecond),
			DiscoveryTimeout:     getEnvDuration("DISCOVERY_TIMEOUT", 0),
			CheckInterval:        getEnvDuration("CHECK_INTERVAL", 0),
		},
		DataPath: getEnv("DATA_PATH", "data/edges.csv"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
