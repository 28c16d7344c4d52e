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

// Package config types define the configuration structures used throughout
// repokeep. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for repokeep. It
// consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub   GitHubConfig             `yaml:"github"`
	Defaults DefaultsConfig           `yaml:"defaults"`
	Accounts map[string]AccountConfig `yaml:"accounts"`
}

// GitHubConfig contains GitHub-specific settings including the API endpoint
// and authentication configuration. This allows easy configuration for
// GitHub Enterprise deployments by specifying a custom endpoint.
type GitHubConfig struct {
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to every snapshot run
// unless overridden by account-specific settings or command-line flags.
type DefaultsConfig struct {
	// Account is the account fetched when the command line names none.
	Account string `yaml:"account"`

	// PageSize is the number of repositories requested per page (1..100).
	PageSize int `yaml:"page_size"`

	// MaxPages is the defensive cap on pages fetched per account.
	MaxPages int `yaml:"max_pages"`

	// SnapshotFile and ErrorFile are the output destinations, fully
	// replaced on every run.
	SnapshotFile string `yaml:"snapshot_file"`
	ErrorFile    string `yaml:"error_file"`

	// Fields selects which record attributes are written to the snapshot.
	// Empty means the built-in default field set.
	Fields []string `yaml:"fields"`

	// MetadataDir is where per-run metadata records are stored.
	MetadataDir string `yaml:"metadata_dir"`
}

// AccountConfig contains account-specific overrides that allow fine-tuning
// fetch behavior for individual accounts, such as a lower page size for an
// account whose repositories carry heavy metadata.
type AccountConfig struct {
	PageSize int `yaml:"page_size"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. The defaults target public GitHub.com but can be overridden
// for GitHub Enterprise deployments.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize:     50,
			MaxPages:     400,
			SnapshotFile: "sorted_repositories.json",
			ErrorFile:    "fetch_errors.json",
			MetadataDir:  "~/.repokeep/runs",
		},
		Accounts: make(map[string]AccountConfig),
	}
}
