package main

import (
	"flag"
	"os"
	"time"

	"alphazero/experiments"
	"alphazero/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file; defaults are used when empty")
	experiment := flag.String("experiment", experiments.SelfPlay, "Experiment to run: selfplay, rollout or throughput")
	output := flag.String("output", "", "Directory for experiment results; overrides the config")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	config := meta.Default()
	if *configPath != "" {
		loaded, err := meta.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		config = loaded
	}
	if *output != "" {
		config.Output = *output
	}
	zerolog.SetGlobalLevel(config.Level())

	if err := experiments.Run(*experiment, config); err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
	}
}
