// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source opens capture files from the local filesystem or from an
// S3-compatible object store.
package source // import "github.com/yjv/fnirsi/internal/source"

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/yjv/fnirsi/internal/mmap"
)

// Scheme is the URI prefix selecting the object store backend.
const Scheme = "s3://"

// Environment variables holding the object store configuration.
const (
	EnvEndpoint  = "FNIRSI_S3_ENDPOINT"
	EnvAccessKey = "FNIRSI_S3_ACCESS_KEY"
	EnvSecretKey = "FNIRSI_S3_SECRET_KEY"
	EnvSecure    = "FNIRSI_S3_SECURE"
)

// Blob is the content of an opened capture file.
type Blob interface {
	Bytes() []byte
	Close() error
}

// S3Config describes how to reach the object store.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Secure    bool
}

// S3ConfigFromEnv reads the object store configuration from the environment.
func S3ConfigFromEnv() (S3Config, error) {
	cfg := S3Config{
		Endpoint:  os.Getenv(EnvEndpoint),
		AccessKey: os.Getenv(EnvAccessKey),
		SecretKey: os.Getenv(EnvSecretKey),
	}
	if cfg.Endpoint == "" {
		return cfg, fmt.Errorf("source: %s is not set", EnvEndpoint)
	}
	if v := os.Getenv(EnvSecure); v != "" {
		ok, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("source: invalid %s value %q: %w", EnvSecure, v, err)
		}
		cfg.Secure = ok
	}
	return cfg, nil
}

// Open opens the named capture.
// Names starting with "s3://" are fetched from the object store configured
// from the environment, others are memory-mapped from the local filesystem.
func Open(ctx context.Context, name string) (Blob, error) {
	if !strings.HasPrefix(name, Scheme) {
		h, err := mmap.Open(name)
		if err != nil {
			return nil, err
		}
		return h, nil
	}

	cfg, err := S3ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return cfg.Open(ctx, name)
}

// Open fetches the object named by the s3://bucket/key URI.
func (cfg S3Config) Open(ctx context.Context, uri string) (Blob, error) {
	bucket, key, err := SplitURI(uri)
	if err != nil {
		return nil, err
	}

	cli, err := minio.New(
		cfg.Endpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.Secure,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("source: could not connect to %q: %w", cfg.Endpoint, err)
	}

	obj, err := cli.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("source: could not get %q: %w", uri, err)
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("source: could not read %q: %w", uri, err)
	}
	return blob(raw), nil
}

// SplitURI splits an s3://bucket/key URI into its bucket and key.
func SplitURI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, Scheme) {
		return "", "", fmt.Errorf("source: %q is not an %s URI", uri, Scheme)
	}
	bucket, key, _ = strings.Cut(strings.TrimPrefix(uri, Scheme), "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("source: invalid URI %q (want %sbucket/key)", uri, Scheme)
	}
	return bucket, key, nil
}

type blob []byte

func (b blob) Bytes() []byte { return b }
func (blob) Close() error { return nil }

var (
	_ Blob = (*mmap.Handle)(nil)
	_ Blob = (blob)(nil)
)
