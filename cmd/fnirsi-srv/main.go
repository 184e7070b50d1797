// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fnirsi-srv serves the decoding of FNIRSI oscilloscope captures
// over HTTP.
//
// Usage: fnirsi-srv [OPTIONS]
//
// Endpoints:
//
//	POST /decode/:mode?profile=v1  decodes the capture sent as request body
//	GET  /profiles                 lists the known layout profiles
//	GET  /healthz                  reports the service status
//
// Example:
//
//	$> fnirsi-srv -c ./fnirsi-srv.yaml
//	$> curl --data-binary @capture.bin localhost:8080/decode/parsed?profile=v2
package main // import "github.com/yjv/fnirsi/cmd/fnirsi-srv"

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	var (
		cfgFile = pflag.StringP("config", "c", "", "path to configuration file")
		addr    = pflag.StringP("addr", "a", "", "address to listen on (overrides the configuration)")
		debug   = pflag.BoolP("debug", "d", false, "enable debug logging")
	)
	pflag.Parse()

	cfg, err := LoadConfig(*cfgFile)
	if err != nil {
		log.Fatalf("fnirsi-srv: could not load configuration: %+v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	cfg.Debug = cfg.Debug || *debug

	logger := SetupLogger(cfg.Debug)
	defer logger.Sync()

	e, err := SetupServer(cfg, logger)
	if err != nil {
		logger.Fatal("could not setup server", zap.Error(err))
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr))
		err := e.Start(cfg.Addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("stopping server due to error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = e.Shutdown(ctx)
	if err != nil {
		logger.Fatal("could not shutdown server", zap.Error(err))
	}
}
