// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"github.com/yjv/fnirsi/capture"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the service configuration.
type Config struct {
	Addr    string `mapstructure:"addr"`
	Debug   bool   `mapstructure:"debug"`
	Profile string `mapstructure:"profile"` // default layout profile
	MaxBody int64  `mapstructure:"max_body"`
}

// LoadConfig reads the configuration from the optional file fname and from
// FNIRSI_-prefixed environment variables.
func LoadConfig(fname string) (Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("debug", false)
	v.SetDefault("profile", capture.V1.Name)
	v.SetDefault("max_body", 1<<20)

	v.SetEnvPrefix("fnirsi")
	v.AutomaticEnv()

	if fname != "" {
		v.SetConfigFile(fname)
		err := v.ReadInConfig()
		if err != nil {
			return Config{}, fmt.Errorf("could not read config file %q: %w", fname, err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("could not decode configuration: %w", err)
	}

	_, err = capture.ProfileByName(cfg.Profile)
	if err != nil {
		return cfg, fmt.Errorf("invalid default profile: %w", err)
	}

	if cfg.MaxBody < capture.Size(capture.V1) {
		return cfg, fmt.Errorf("invalid max_body %d (min=%d)", cfg.MaxBody, capture.Size(capture.V1))
	}

	return cfg, nil
}

// SetupLogger sets up the zap.Logger structured logger.
func SetupLogger(debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	logger, err := zap.Config{
		Encoding:    "json",
		Level:       zap.NewAtomicLevelAt(level),
		OutputPaths: []string{"stdout"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "message",
			LevelKey:    "level",
			EncodeLevel: zapcore.CapitalLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.ISO8601TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}.Build()
	if err != nil {
		log.Fatalf("fnirsi-srv: could not setup logger: %+v", err)
	}

	return logger
}
