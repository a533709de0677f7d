package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Structs

// Config holds all information parsed from
// supplied config file.
type Config struct {
	Simulation Simulation
}

// Simulation configures one convergence simulation run: the number of
// participating replicas, how much work each replica performs, how many
// gossip rounds are executed and the seed that makes a run reproducible.
type Simulation struct {
	Replicas       int
	OpsPerReplica  int
	Rounds         int
	Seed           int64
	PrometheusAddr string
}

// Functions

// LoadConfig loads and validates a TOML config file from configFile.
func LoadConfig(configFile string) (*Config, error) {

	conf := new(Config)

	// Parse values from TOML file into struct.
	_, err := toml.DecodeFile(configFile, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read in TOML config file at '%s' with: %v", configFile, err)
	}

	// A simulation needs at least two replicas to exchange state.
	if conf.Simulation.Replicas < 2 {
		return nil, fmt.Errorf("simulation needs at least 2 replicas, config specifies %d", conf.Simulation.Replicas)
	}

	if conf.Simulation.OpsPerReplica < 0 {
		return nil, fmt.Errorf("operations per replica cannot be negative, config specifies %d", conf.Simulation.OpsPerReplica)
	}

	if conf.Simulation.Rounds < 1 {
		return nil, fmt.Errorf("simulation needs at least 1 round, config specifies %d", conf.Simulation.Rounds)
	}

	return conf, nil
}
