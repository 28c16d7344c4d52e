// Copyright 2025 RepoKeep, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/repokeephq/repokeep/internal/config"
	rkerrors "github.com/repokeephq/repokeep/internal/errors"
	"github.com/repokeephq/repokeep/internal/output"
)

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "invalid token", err: rkerrors.ErrInvalidToken, want: 2},
		{name: "account not found", err: rkerrors.ErrAccountNotFound, want: 2},
		{name: "rate limit", err: rkerrors.ErrRateLimit, want: 2},
		{name: "network failure", err: rkerrors.ErrNetworkFailure, want: 3},
		{name: "write failure", err: rkerrors.ErrWriteFailed, want: 1},
		{name: "generic", err: errors.New("something broke"), want: 1},
		{
			name: "wrapped write failure",
			err:  fmt.Errorf("failed to persist snapshot: %w", rkerrors.ErrWriteFailed),
			want: 1,
		},
		{
			name: "wrapped auth failure",
			err:  fmt.Errorf("preflight failed: %w", rkerrors.ErrInvalidToken),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestNormalizeVisibility(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "all", want: ""},
		{in: "ALL", want: ""},
		{in: "public", want: "public"},
		{in: "Public", want: "public"},
		{in: " private ", want: "private"},
		{in: "internal", wantErr: true},
		{in: "nonsense", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			got, err := normalizeVisibility(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeVisibility(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("normalizeVisibility(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveFields(t *testing.T) {
	t.Run("flag wins over config", func(t *testing.T) {
		fields, err := resolveFields("name, url ,visibility", []string{"name", "url", "isFork"})
		if err != nil {
			t.Fatalf("resolveFields failed: %v", err)
		}
		want := []string{"name", "url", "visibility"}
		if len(fields) != len(want) {
			t.Fatalf("fields = %v, want %v", fields, want)
		}
		for i := range want {
			if fields[i] != want[i] {
				t.Errorf("fields[%d] = %q, want %q", i, fields[i], want[i])
			}
		}
	})

	t.Run("config used when flag empty", func(t *testing.T) {
		fields, err := resolveFields("", []string{"name", "url", "isFork"})
		if err != nil {
			t.Fatalf("resolveFields failed: %v", err)
		}
		if len(fields) != 3 || fields[2] != "isFork" {
			t.Errorf("fields = %v, want the config field set", fields)
		}
	})

	t.Run("built-in default when both empty", func(t *testing.T) {
		fields, err := resolveFields("", nil)
		if err != nil {
			t.Fatalf("resolveFields failed: %v", err)
		}
		if len(fields) != len(output.DefaultFields) {
			t.Errorf("fields = %v, want the built-in default set", fields)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		if _, err := resolveFields("name,url,bogus", nil); err == nil {
			t.Error("resolveFields accepted an unknown field")
		}
	})

	t.Run("field set without url rejected", func(t *testing.T) {
		if _, err := resolveFields("name,visibility", nil); err == nil {
			t.Error("resolveFields accepted a set without url")
		}
	})
}

func TestGetToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("CUSTOM_TOKEN", "custom-token")

	if got := getToken("flag-token", "GITHUB_TOKEN"); got != "flag-token" {
		t.Errorf("getToken with flag = %q, want flag-token", got)
	}
	if got := getToken("", "GITHUB_TOKEN"); got != "env-token" {
		t.Errorf("getToken from env = %q, want env-token", got)
	}
	if got := getToken("", "CUSTOM_TOKEN"); got != "custom-token" {
		t.Errorf("getToken from custom env = %q, want custom-token", got)
	}
	if got := getToken("", ""); got != "env-token" {
		t.Errorf("getToken with empty env name = %q, want the GITHUB_TOKEN fallback", got)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := config.DefaultConfig()

	applyFlagOverrides(cfg, snapshotFlags{
		outputFile: "/tmp/snap.json",
		errorFile:  "/tmp/errs.json",
		pageSize:   33,
		maxPages:   7,
	})

	if cfg.Defaults.SnapshotFile != "/tmp/snap.json" {
		t.Errorf("snapshot file = %q, want the flag value", cfg.Defaults.SnapshotFile)
	}
	if cfg.Defaults.ErrorFile != "/tmp/errs.json" {
		t.Errorf("error file = %q, want the flag value", cfg.Defaults.ErrorFile)
	}
	if cfg.Defaults.PageSize != 33 {
		t.Errorf("page size = %d, want 33", cfg.Defaults.PageSize)
	}
	if cfg.Defaults.MaxPages != 7 {
		t.Errorf("max pages = %d, want 7", cfg.Defaults.MaxPages)
	}

	// Zero-valued flags leave the config untouched.
	applyFlagOverrides(cfg, snapshotFlags{})
	if cfg.Defaults.SnapshotFile != "/tmp/snap.json" || cfg.Defaults.PageSize != 33 {
		t.Errorf("empty flags changed defaults: %+v", cfg.Defaults)
	}
}
