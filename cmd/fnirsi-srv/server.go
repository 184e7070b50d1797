// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/yjv/fnirsi"
	"github.com/yjv/fnirsi/capture"
	"github.com/yjv/fnirsi/internal/render"
	"go.uber.org/zap"
)

type server struct {
	cfg  Config
	prof capture.Profile
	log  *zap.Logger
}

// SetupServer creates the HTTP server and registers its routes.
func SetupServer(cfg Config, logger *zap.Logger) (*echo.Echo, error) {
	p, err := capture.ProfileByName(cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("invalid default profile: %w", err)
	}

	srv := &server{
		cfg:  cfg,
		prof: p,
		log:  logger,
	}

	e := echo.New()
	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(srv.logRequest)

	e.GET("/healthz", srv.healthz)
	e.GET("/profiles", srv.profiles)
	e.POST("/decode/:mode", srv.decode)

	return e, nil
}

func (srv *server) logRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		srv.log.Info(
			"request",
			zap.String("method", req.Method),
			zap.String("uri", req.RequestURI),
			zap.Int("status", c.Response().Status),
			zap.Int64("size", c.Response().Size),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil
	}
}

type health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (srv *server) healthz(c echo.Context) error {
	version, _ := fnirsi.Version()
	return c.JSON(http.StatusOK, health{Status: "ok", Version: version})
}

type profileInfo struct {
	Name         string `json:"name"`
	Width        string `json:"field_width"`
	Order        string `json:"byte_order"`
	Measurements string `json:"measurements"`
	Inline       bool   `json:"inline"`
	Size         int64  `json:"size"`
	Default      bool   `json:"default,omitempty"`
}

func (srv *server) profiles(c echo.Context) error {
	var infos []profileInfo
	for _, p := range capture.Profiles() {
		infos = append(infos, profileInfo{
			Name:         p.Name,
			Width:        p.Width.String(),
			Order:        p.Order.String(),
			Measurements: p.Measurements.String(),
			Inline:       p.Inline,
			Size:         capture.Size(p),
			Default:      p == srv.prof,
		})
	}
	return c.JSON(http.StatusOK, infos)
}

func (srv *server) decode(c echo.Context) error {
	m, err := render.ModeFrom(c.Param("mode"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := srv.prof
	if name := c.QueryParam("profile"); name != "" {
		p, err = capture.ProfileByName(name)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	var opts []capture.Option
	if v := c.QueryParam("legacy-ch2"); v != "" {
		legacy, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid legacy-ch2 value %q", v))
		}
		if legacy {
			opts = append(opts, capture.WithLegacyChannel2())
		}
	}

	req := c.Request()
	body := http.MaxBytesReader(c.Response(), req.Body, srv.cfg.MaxBody)
	raw, err := io.ReadAll(body)
	if err != nil {
		var merr *http.MaxBytesError
		if errors.As(err, &merr) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("capture larger than %d bytes", merr.Limit))
		}
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("could not read capture: %+v", err))
	}

	out := new(bytes.Buffer)
	err = render.Render(out, m, "capture", raw, p, opts...)
	if err != nil {
		srv.log.Warn(
			"could not decode capture",
			zap.String("mode", string(m)),
			zap.String("profile", p.Name),
			zap.Int("size", len(raw)),
			zap.Error(err),
		)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	srv.log.Debug(
		"decoded capture",
		zap.String("mode", string(m)),
		zap.String("profile", p.Name),
		zap.Int("size", len(raw)),
	)
	return c.Blob(http.StatusOK, m.ContentType(), out.Bytes())
}
