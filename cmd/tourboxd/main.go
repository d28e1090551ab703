// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Command tourboxd turns a TourBox-class device's byte stream into
// synthetic keyboard and mouse events, driven by a configuration file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tourboxd/tourboxd/config"
	"github.com/tourboxd/tourboxd/internal/keys"
	"github.com/tourboxd/tourboxd/internal/logger"
	"github.com/tourboxd/tourboxd/internal/mapping"
	"github.com/tourboxd/tourboxd/internal/pipeline"
	"github.com/tourboxd/tourboxd/internal/protocol"
	"github.com/tourboxd/tourboxd/internal/sink"
	"github.com/tourboxd/tourboxd/internal/transport"
)

// defaultConfigFile is used when no path is given on the command line
// (spec.md §6.3).
const defaultConfigFile = "config.json"

func main() {
	run()
}

// run builds every collaborator and blocks until an interrupt/SIGTERM
// signal arrives. A config-load or initialization failure is fatal at
// startup per spec.md §6.4 and calls log.Fatal, mirroring the teacher's
// cmd/daemon Fatal/os.Exit(1) pairing; runtime device errors after that
// point only trigger reconnects, never exit the process.
func run() {
	configFile := defaultConfigFile
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	log := logger.NewDefaultLogger(logger.InfoLevel)

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatal("failed to load configuration from %s: %v", configFile, err)
	}

	level := logger.InfoLevel
	if cfg.General.Debug {
		level = logger.DebugLevel
	}
	if cfg.General.LogFile != "" {
		configured, err := logger.Configure(logger.Config{Level: level, File: cfg.General.LogFile})
		if err != nil {
			log.Warning("could not open log file %s: %v", cfg.General.LogFile, err)
		} else {
			log = configured
		}
	} else {
		log = logger.NewDefaultLogger(level)
	}

	p, err := build(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("tourboxd starting")
	p.Run(ctx)
	log.Info("tourboxd stopped")
}

// build wires every collaborator the Pipeline needs from the loaded
// configuration, following the teacher's Initialize/RunAndWait staging
// (internal/app/app.go) compressed into a single function since this
// daemon has far fewer services than the teacher's.
func build(cfg *config.Config, log logger.Logger) (*pipeline.Pipeline, error) {
	opener, err := transport.NewOpener(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}

	decoder := protocol.New(codeTablesFromConfig(cfg.KeyMap))

	mappingConfigs, err := mappingConfigsFromConfig(cfg.Mappings)
	if err != nil {
		return nil, fmt.Errorf("mappings: %w", err)
	}
	processor, err := mapping.NewProcessor(mappingConfigs)
	if err != nil {
		return nil, fmt.Errorf("mappings: %w", err)
	}

	driver, err := keys.NewSystemDriver()
	if err != nil {
		return nil, fmt.Errorf("injector: %w", err)
	}
	injector := keys.NewInjector(driver, log)

	var diagSink sink.Sink
	if cfg.Diagnostics.Enabled {
		ws := sink.NewWebSocketSink(cfg.Diagnostics.Addr, log)
		if err := ws.Start(); err != nil {
			return nil, fmt.Errorf("diagnostics: %w", err)
		}
		diagSink = ws
	} else {
		diagSink = sink.NewLogSink(log)
	}

	return pipeline.New(opener, decoder, processor, injector, diagSink, log), nil
}
