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
	"os"

	"github.com/spf13/cobra"

	rkerrors "github.com/repokeephq/repokeep/internal/errors"
	"github.com/repokeephq/repokeep/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "repokeep",
		Short: "Snapshot the repository inventory of GitHub accounts",
		Long: `Repokeep pages through the repository list of one or more GitHub
accounts and writes a deduplicated, url-sorted snapshot to disk, together
with an error report for any pages that could not be fetched.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newSnapshotCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, rkerrors.ErrInvalidToken) ||
		errors.Is(err, rkerrors.ErrAccountNotFound) ||
		errors.Is(err, rkerrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, rkerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error, including write failures
}
