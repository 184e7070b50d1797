// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenLocal(t *testing.T) {
	want := []byte("fnirsi capture")
	fname := filepath.Join(t.TempDir(), "capture.bin")
	err := os.WriteFile(fname, want, 0644)
	if err != nil {
		t.Fatalf("could not create file: %+v", err)
	}

	b, err := Open(context.Background(), fname)
	if err != nil {
		t.Fatalf("could not open local capture: %+v", err)
	}
	defer b.Close()

	if got := b.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("invalid content: got=%q, want=%q", got, want)
	}

	err = b.Close()
	if err != nil {
		t.Fatalf("could not close capture: %+v", err)
	}

	_, err = Open(context.Background(), fname+".missing")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("invalid error: %+v", err)
	}
}

func TestSplitURI(t *testing.T) {
	for _, tc := range []struct {
		uri    string
		bucket string
		key    string
		err    bool
	}{
		{uri: "s3://scope/capture.bin", bucket: "scope", key: "capture.bin"},
		{uri: "s3://scope/2022/01/capture.bin", bucket: "scope", key: "2022/01/capture.bin"},
		{uri: "s3://scope", err: true},
		{uri: "s3://scope/", err: true},
		{uri: "s3:///capture.bin", err: true},
		{uri: "capture.bin", err: true},
	} {
		t.Run(tc.uri, func(t *testing.T) {
			bucket, key, err := SplitURI(tc.uri)
			switch {
			case err != nil && !tc.err:
				t.Fatalf("could not split URI: %+v", err)
			case err == nil && tc.err:
				t.Fatalf("expected an error")
			}
			if bucket != tc.bucket || key != tc.key {
				t.Fatalf("invalid split: got=(%q, %q), want=(%q, %q)", bucket, key, tc.bucket, tc.key)
			}
		})
	}
}

func TestS3ConfigFromEnv(t *testing.T) {
	t.Setenv(EnvEndpoint, "")
	_, err := S3ConfigFromEnv()
	if err == nil {
		t.Fatalf("expected an error with no endpoint")
	}

	_, err = Open(context.Background(), "s3://scope/capture.bin")
	if err == nil {
		t.Fatalf("expected an error with no endpoint")
	}

	t.Setenv(EnvEndpoint, "localhost:9000")
	t.Setenv(EnvAccessKey, "access")
	t.Setenv(EnvSecretKey, "secret")
	t.Setenv(EnvSecure, "true")

	cfg, err := S3ConfigFromEnv()
	if err != nil {
		t.Fatalf("could not read config: %+v", err)
	}
	want := S3Config{
		Endpoint:  "localhost:9000",
		AccessKey: "access",
		SecretKey: "secret",
		Secure:    true,
	}
	if cfg != want {
		t.Fatalf("invalid config:\ngot= %+v\nwant=%+v", cfg, want)
	}

	t.Setenv(EnvSecure, "maybe")
	_, err = S3ConfigFromEnv()
	if err == nil {
		t.Fatalf("expected an error for invalid %s", EnvSecure)
	}
}
