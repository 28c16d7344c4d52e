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

// Package config provides configuration management for repokeep with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Account-specific configuration
//  4. Configuration file
//  5. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .repokeep.yaml (current directory)
//   - .repokeep.yml (current directory)
//   - ~/.repokeep/config.yaml
//   - ~/.repokeep/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Path expansion (~ and environment variables) is
// performed on directory paths.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".repokeep.yaml",
			".repokeep.yml",
			filepath.Join(os.Getenv("HOME"), ".repokeep", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".repokeep", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.Defaults.MetadataDir = expandPath(cfg.Defaults.MetadataDir)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}

	if account := os.Getenv("REPOKEEP_ACCOUNT"); account != "" {
		cfg.Defaults.Account = account
	}
	if pageSize := os.Getenv("REPOKEEP_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
	if maxPages := os.Getenv("REPOKEEP_MAX_PAGES"); maxPages != "" {
		if pages, err := parsePositiveInt(maxPages); err == nil {
			cfg.Defaults.MaxPages = pages
		}
	}
	if path := os.Getenv("REPOKEEP_SNAPSHOT_FILE"); path != "" {
		cfg.Defaults.SnapshotFile = path
	}
	if path := os.Getenv("REPOKEEP_ERROR_FILE"); path != "" {
		cfg.Defaults.ErrorFile = path
	}
	if dir := os.Getenv("REPOKEEP_METADATA_DIR"); dir != "" {
		cfg.Defaults.MetadataDir = dir
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// GetPageSize returns the effective page size for an account, taking
// account-specific overrides into account. If the account has a specific
// page size configured, it returns that value. Otherwise, it returns the
// default page size.
func (c *Config) GetPageSize(account string) int {
	if accountCfg, ok := c.Accounts[account]; ok && accountCfg.PageSize > 0 {
		return accountCfg.PageSize
	}
	return c.Defaults.PageSize
}

// Validate checks if the configuration contains valid values. It ensures
// page sizes are within GitHub's limits, output paths are set, and the
// endpoint is not empty. This should be called after loading configuration
// to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("default page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > 100 {
		return fmt.Errorf("default page size %d exceeds GitHub API limit of 100", c.Defaults.PageSize)
	}
	if c.Defaults.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive, got: %d", c.Defaults.MaxPages)
	}
	if c.Defaults.SnapshotFile == "" {
		return fmt.Errorf("snapshot file path cannot be empty")
	}
	if c.Defaults.ErrorFile == "" {
		return fmt.Errorf("error file path cannot be empty")
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	for account, accountCfg := range c.Accounts {
		if accountCfg.PageSize < 0 || accountCfg.PageSize > 100 {
			return fmt.Errorf("page size for account %q must be within 1..100, got: %d", account, accountCfg.PageSize)
		}
	}
	return nil
}
