package main

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configFlagName      = "config"
	kubernetesFlagName  = "kubernetes"
	ignoreMovedFlagName = "ignore-moved"
	watchFlagName       = "watch"
	logFileFlagName     = "log-file"
	logLevelFlagName    = "log-level"
	verboseFlagName     = "verbose"

	defaultConfigFile = "everdiff.yaml"
	defaultLogFile    = ".everdiff.log"

	envPrefix = "EVERDIFF"

	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigFile(defaultConfigFile)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	viper.SetDefault(configFlagName, defaultConfigFile)
	viper.SetDefault(kubernetesFlagName, false)
	viper.SetDefault(ignoreMovedFlagName, false)
	viper.SetDefault(watchFlagName, false)
	viper.SetDefault(logFileFlagName, defaultLogFile)
	viper.SetDefault(logLevelFlagName, "info")
	viper.SetDefault(verboseFlagName, false)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}
	}
}

func parseSlogLevel(s string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if n, err := strconv.Atoi(s); err == nil {
		return slog.Level(n)
	}
	return fallback
}

// configureLogger sets up the global slog logger against a rotating
// lumberjack file sink; the core itself never logs (spec.md §7), so
// this only ever sees CLI/watcher-level events.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFile
	}

	level := parseSlogLevel(viper.GetString(logLevelFlagName), slog.LevelInfo)
	if verbose {
		level = slog.LevelDebug
	}

	sink := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}

	globalLogger = slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(globalLogger)
}
