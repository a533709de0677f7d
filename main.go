package main

import (
	"flag"
	"os"
	"runtime"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/undisputed-seraphim/crdt/config"
)

// Functions

// initLogger initializes a JSON gokit-logger set
// to the according log level supplied via cli flag.
func initLogger(loglevel string) log.Logger {

	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger,
		"ts", log.DefaultTimestampUTC,
		"caller", log.DefaultCaller,
	)

	switch strings.ToLower(loglevel) {
	case "info":
		logger = level.NewFilter(logger, level.AllowInfo())
	case "warn":
		logger = level.NewFilter(logger, level.AllowWarn())
	case "error":
		logger = level.NewFilter(logger, level.AllowError())
	default:
		logger = level.NewFilter(logger, level.AllowDebug())
	}

	return logger
}

func main() {

	// Set CPUs usable to all available.
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Parse command-line flags.
	configFlag := flag.String("config", "simulation.toml", "Provide path to configuration file in TOML syntax.")
	loglevelFlag := flag.String("loglevel", "debug", "This flag sets the default logging level.")
	flag.Parse()

	logger := initLogger(*loglevelFlag)

	// Read configuration from file.
	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to load the config", "err", err,
		)
		os.Exit(1)
	}

	metrics := NewSimMetrics(conf.Simulation.PrometheusAddr)
	go runPromHTTP(logger, conf.Simulation.PrometheusAddr)

	// Prepare the replica cluster.
	sim, err := NewSimulation(conf.Simulation, logger, metrics)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to initialize the simulation",
			"err", err,
		)
		os.Exit(2)
	}

	// Run rounds of mutation and gossip and verify convergence.
	if err := sim.Run(); err != nil {
		level.Error(logger).Log(
			"msg", "replicas failed to converge",
			"err", err,
		)
		os.Exit(3)
	}
}
