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
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/repokeephq/repokeep/internal/config"
	rkerrors "github.com/repokeephq/repokeep/internal/errors"
	"github.com/repokeephq/repokeep/internal/github"
	"github.com/repokeephq/repokeep/internal/inventory"
	"github.com/repokeephq/repokeep/internal/metadata"
	"github.com/repokeephq/repokeep/internal/output"
	"github.com/repokeephq/repokeep/pkg/version"
)

// snapshotFlags carries the command-line overrides for one snapshot run.
type snapshotFlags struct {
	token      string
	configPath string
	outputFile string
	errorFile  string
	pageSize   int
	maxPages   int
	fields     string
	visibility string
	sourceOnly bool
	noMetadata bool
}

// snapshotCmd represents the snapshot command
func newSnapshotCommand() *cobra.Command {
	var flags snapshotFlags

	cmd := &cobra.Command{
		Use:   "snapshot [account]...",
		Short: "Fetch and persist the repository list of GitHub accounts",
		Long: `Fetch the full repository list of one or more GitHub accounts (users
or organizations) and write it to disk as a deduplicated snapshot sorted
by repository url.

Pages that cannot be fetched are recorded in the error file and do not
fail the run; only a failure to write the output files does.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to configuration file")
	cmd.Flags().StringVar(&flags.outputFile, "output", "", "Snapshot file path (default: sorted_repositories.json)")
	cmd.Flags().StringVar(&flags.errorFile, "errors-file", "", "Error file path (default: fetch_errors.json)")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "Repositories per page (1-100)")
	cmd.Flags().IntVar(&flags.maxPages, "max-pages", 0, "Defensive cap on pages fetched per account")
	cmd.Flags().StringVar(&flags.fields, "fields", "", "Comma-separated record fields to write (must include name,url)")
	cmd.Flags().StringVar(&flags.visibility, "visibility", "", "Restrict to public or private repositories")
	cmd.Flags().BoolVar(&flags.sourceOnly, "source", false, "Exclude forks from the snapshot")
	cmd.Flags().BoolVar(&flags.noMetadata, "no-metadata", false, "Skip writing the run metadata record")

	return cmd
}

// runSnapshot executes one snapshot run end to end: configuration, fetch
// loop, finalization, persistence, metadata.
func runSnapshot(ctx context.Context, args []string, flags snapshotFlags) error {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	accounts := args
	if len(accounts) == 0 && cfg.Defaults.Account != "" {
		accounts = []string{cfg.Defaults.Account}
	}
	if len(accounts) == 0 {
		return fmt.Errorf("no account specified. Pass one or more account names or set defaults.account in the config file")
	}

	visibility, err := normalizeVisibility(flags.visibility)
	if err != nil {
		return err
	}

	fields, err := resolveFields(flags.fields, cfg.Defaults.Fields)
	if err != nil {
		return err
	}

	token := getToken(flags.token, cfg.GitHub.TokenEnv)
	if token == "" {
		return fmt.Errorf("GitHub token not found. Set %s or use --token flag", cfg.GitHub.TokenEnv)
	}

	client := github.NewRetryClient(github.NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint), nil)

	// Preflight with a cheap account query. A bad token fails every page
	// identically, so surface it now instead of recording one useless
	// error entry per account. Any other failure is left to the fetch
	// loop, which records it without aborting the run.
	if _, err := client.GetAccountInfo(ctx, accounts[0]); err != nil {
		if errors.Is(err, rkerrors.ErrInvalidToken) {
			return err
		}
	}

	tracker := metadata.New()

	// Account-specific page-size overrides only apply unambiguously when a
	// single account is fetched.
	pageSize := cfg.Defaults.PageSize
	if len(accounts) == 1 {
		pageSize = cfg.GetPageSize(accounts[0])
	}

	fetcher := inventory.NewFetcher(client, inventory.Options{
		PageSize:   pageSize,
		MaxPages:   cfg.Defaults.MaxPages,
		Visibility: visibility,
		SourceOnly: flags.sourceOnly,
		Progress:   printProgress,
	})

	result := fetcher.RunAll(ctx, accounts)
	fmt.Fprintf(os.Stderr, "\r\033[K") // Clear progress line

	snapshot := inventory.Finalize(result.Records)

	writer := output.NewFileWriter(cfg.Defaults.SnapshotFile, cfg.Defaults.ErrorFile, fields)
	if err := writer.Persist(snapshot, result.Errors); err != nil {
		return err
	}

	if !flags.noMetadata {
		meta := tracker.Generate(version.Version, metadata.RunParams{
			Accounts:   accounts,
			PageSize:   pageSize,
			Fields:     fields,
			Visibility: visibility,
			SourceOnly: flags.sourceOnly,
		}, metadata.RunStats{
			TotalFetched: len(result.Records),
			SnapshotSize: len(snapshot),
			FailedPages:  len(result.Errors),
			PagesFetched: result.Pages,
			APICallCount: result.APICalls,
			Truncated:    result.Truncated,
		})
		if err := metadata.SaveMetadata(meta, cfg.Defaults.MetadataDir); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", color.YellowString("Warning: failed to save run metadata: %v", err))
		}
	}

	printSummary(snapshot, result, cfg.Defaults.SnapshotFile, cfg.Defaults.ErrorFile)
	return nil
}

// applyFlagOverrides merges command-line flags into the loaded config.
// Flags have the highest precedence.
func applyFlagOverrides(cfg *config.Config, flags snapshotFlags) {
	if flags.outputFile != "" {
		cfg.Defaults.SnapshotFile = flags.outputFile
	}
	if flags.errorFile != "" {
		cfg.Defaults.ErrorFile = flags.errorFile
	}
	if flags.pageSize > 0 {
		cfg.Defaults.PageSize = flags.pageSize
	}
	if flags.maxPages > 0 {
		cfg.Defaults.MaxPages = flags.maxPages
	}
}

// normalizeVisibility validates the --visibility flag.
// Empty and "all" both mean no filter.
func normalizeVisibility(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all":
		return "", nil
	case "public":
		return "public", nil
	case "private":
		return "private", nil
	default:
		return "", fmt.Errorf("invalid --visibility value %q. Expected public, private or all", v)
	}
}

// resolveFields picks the effective field set: flag, then config, then the
// built-in default, and validates it.
func resolveFields(flagValue string, configFields []string) ([]string, error) {
	var fields []string
	switch {
	case flagValue != "":
		for _, f := range strings.Split(flagValue, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	case len(configFields) > 0:
		fields = configFields
	default:
		fields = output.DefaultFields
	}

	if err := output.ValidateFields(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// getToken returns the GitHub token from flag or environment variable
func getToken(flagToken, tokenEnv string) string {
	if flagToken != "" {
		return flagToken
	}
	if tokenEnv == "" {
		tokenEnv = "GITHUB_TOKEN"
	}
	return os.Getenv(tokenEnv)
}

// printProgress updates the progress line on stderr after each page.
func printProgress(account string, pages, records int) {
	fmt.Fprintf(os.Stderr, "\rFetching repositories from %s... %d repositories (page %d)", account, records, pages)
}

// printSummary reports the run outcome on stderr.
func printSummary(snapshot inventory.Snapshot, result *inventory.RunResult, snapshotFile, errorFile string) {
	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "%s\n", color.YellowString("Completed with %d failed page(s); details in %s", len(result.Errors), errorFile))
	}
	dropped := len(result.Records) - len(snapshot)
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "Dropped %d duplicate or url-less record(s)\n", dropped)
	}
	fmt.Fprintf(os.Stderr, "%s\n", color.GreenString("Wrote %d repositories to %s", len(snapshot), snapshotFile))
}
