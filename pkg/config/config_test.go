package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "node.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoadConfig_ValidCoordinator(t *testing.T) {
	path := writeTempConfig(t, `
machine_id: m0
is_coordinator: true
algorithm: fast-mis
timing:
  initial_start_delay: 100ms
  phase_interval: 500ms
  random_value_send_delay: 50ms
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Algorithm != AlgorithmFastMIS {
		t.Fatalf("want fast-mis, got %s", cfg.Algorithm)
	}
}

func TestLoadConfig_RejectsUnknownAlgorithm(t *testing.T) {
	path := writeTempConfig(t, `
machine_id: m0
is_coordinator: true
algorithm: bubble-sort-mis
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for an unknown algorithm")
	}
}

func TestLoadConfig_RequiresCoordinatorAddressWhenNotCoordinator(t *testing.T) {
	path := writeTempConfig(t, `
machine_id: m1
is_coordinator: false
algorithm: slow-mis
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error when coordinator address is missing")
	}
}

func TestConfig_NewStrategyPerAlgorithm(t *testing.T) {
	cases := []struct {
		algo Algorithm
		want string
	}{
		{AlgorithmSlowMIS, "slow-mis"},
		{AlgorithmFastMIS, "fast-mis"},
		{AlgorithmDesireLevelMIS, "desire-level-mis"},
	}
	for _, tc := range cases {
		cfg := &Config{Algorithm: tc.algo}
		strat, err := cfg.NewStrategy(1)
		if err != nil {
			t.Fatalf("NewStrategy(%s): %v", tc.algo, err)
		}
		if strat.Name() != tc.want {
			t.Errorf("algorithm %s: want strategy name %s, got %s", tc.algo, tc.want, strat.Name())
		}
	}
}
