package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	app "github.com/rocketscienceinc/uril/internal"
	"github.com/rocketscienceinc/uril/internal/config"
)

const (
	configFile = "uril/config.yml"
	logFile    = "uril/uril.log"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	configPath := flag.String("config", "", "path to config.yml")
	flag.Parse()

	conf := initConfig(*configPath)
	logger, closeLog := initLogger(conf)
	defer closeLog()

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config: flag, then the XDG config dir, then the working directory.
func initConfig(path string) *config.Config {
	if path != "" {
		return config.MustLoad(path)
	}

	if found, err := xdg.SearchConfigFile(configFile); err == nil {
		return config.MustLoad(found)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger. The terminal UI owns stdout, so it logs into the XDG cache dir.
func initLogger(conf *config.Config) (zerolog.Logger, func()) {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var output io.Writer = os.Stdout
	closeLog := func() {}

	if conf.Interface == config.InterfaceTerminal {
		output = io.Discard

		path, err := xdg.CacheFile(logFile)
		if err == nil {
			file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				output = file
				closeLog = func() { _ = file.Close() }
			}
		}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), closeLog
}
