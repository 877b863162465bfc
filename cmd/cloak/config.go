package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/zoobzio/cloak/format"
)

const (
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultReportFormat = "json"
	defaultOutputSuffix = ".cloak"
)

// Config holds CLI settings. Values come from an optional YAML file and
// CLOAK_* environment variables, then command-line flags.
type Config struct {
	LogLevel     uint32
	LogFormat    string
	ReportFormat string
	OutputSuffix string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("cloak")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("report.format", defaultReportFormat)
	v.SetDefault("output.suffix", defaultOutputSuffix)
	return v
}

// NewConfig loads settings from configFile, if given, layered over the
// environment and defaults.
func NewConfig(configFile string) (*Config, error) {
	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", configFile, err)
		}
	}

	level, err := GetLogLevel(v.GetString("log.level"))
	if err != nil {
		return nil, err
	}
	logFormat, err := parseLogFormat(v.GetString("log.format"))
	if err != nil {
		return nil, err
	}
	report := strings.ToLower(v.GetString("report.format"))
	if _, err := format.Lookup(report); err != nil {
		return nil, fmt.Errorf("invalid report.format setting: %w", err)
	}

	return &Config{
		LogLevel:     level,
		LogFormat:    logFormat,
		ReportFormat: report,
		OutputSuffix: v.GetString("output.suffix"),
	}, nil
}

// GetLogLevel converts the level string to its corresponding int value. It
// returns an error if the level is invalid.
func GetLogLevel(level string) (uint32, error) {
	var l uint32
	switch strings.ToLower(level) {
	case "debug":
		l = uint32(log.DebugLevel)
	case "info":
		l = uint32(log.InfoLevel)
	case "warn":
		l = uint32(log.WarnLevel)
	case "error":
		l = uint32(log.ErrorLevel)
	default:
		return 0, fmt.Errorf("invalid log.level setting %q", level)
	}
	return l, nil
}

func parseLogFormat(name string) (string, error) {
	switch f := strings.ToLower(name); f {
	case "text", "json":
		return f, nil
	default:
		return "", fmt.Errorf("invalid log.format setting %q", name)
	}
}
