package config

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"steamcycle/steam"
)

const DefaultPath = "conf/config.ini"

type Config struct {
	Steam   SteamConfig
	Cycle   CycleConfig
	Circuit CircuitConfig
	Server  ServerConfig
	Log     LogConfig
}

type SteamConfig struct {
	SaturationTable     string // empty: embedded asset
	SuperheatedTable    string
	Tolerance           float64
	MaxIterations       int
	SaturationTolerance float64
}

// Options converts the section into resolver options.
func (s SteamConfig) Options() steam.Options {
	return steam.Options{
		Tolerance:           s.Tolerance,
		MaxIterations:       s.MaxIterations,
		SaturationTolerance: s.SaturationTolerance,
	}
}

type CycleConfig struct {
	Workers int
}

type CircuitConfig struct {
	Substeps int
}

type ServerConfig struct {
	Addr            string
	ReadBufferSize  int
	WriteBufferSize int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads an ini file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	file, err := ini.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Warn("config file not found, using defaults")
		file = ini.Empty()
	} else if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return loadCfg(file), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return loadCfg(ini.Empty())
}

func loadCfg(file *ini.File) *Config {
	d := steam.DefaultOptions()
	return &Config{
		Steam: SteamConfig{
			SaturationTable:     file.Section("steam").Key("SaturationTable").MustString(""),
			SuperheatedTable:    file.Section("steam").Key("SuperheatedTable").MustString(""),
			Tolerance:           file.Section("steam").Key("Tolerance").MustFloat64(d.Tolerance),
			MaxIterations:       file.Section("steam").Key("MaxIterations").MustInt(d.MaxIterations),
			SaturationTolerance: file.Section("steam").Key("SaturationTolerance").MustFloat64(d.SaturationTolerance),
		},
		Cycle: CycleConfig{
			Workers: file.Section("cycle").Key("Workers").MustInt(4),
		},
		Circuit: CircuitConfig{
			Substeps: file.Section("circuit").Key("Substeps").MustInt(10),
		},
		Server: ServerConfig{
			Addr:            file.Section("server").Key("Addr").MustString(":9000"),
			ReadBufferSize:  file.Section("server").Key("ReadBufferSize").MustInt(1024),
			WriteBufferSize: file.Section("server").Key("WriteBufferSize").MustInt(1024),
		},
		Log: LogConfig{
			Level:  file.Section("log").Key("Level").MustString("info"),
			Format: file.Section("log").Key("Format").MustString("text"),
		},
	}
}

// SetupLogging applies the [log] section to the standard logrus logger.
func (c *Config) SetupLogging() error {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	switch c.Log.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("log format %q: want text or json", c.Log.Format)
	}
	return nil
}
