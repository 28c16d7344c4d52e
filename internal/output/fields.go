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

package output

import (
	"encoding/json"
	"fmt"

	"github.com/repokeephq/repokeep/internal/github"
)

// KnownFields lists every attribute a snapshot record can carry, using the
// names GitHub itself uses. The field set passed to the writer must be a
// subset of this list.
var KnownFields = []string{
	"name",
	"url",
	"description",
	"visibility",
	"isPrivate",
	"isFork",
	"isArchived",
	"stargazerCount",
	"diskUsage",
	"primaryLanguage",
	"createdAt",
	"updatedAt",
	"pushedAt",
}

// DefaultFields is the field set used when neither configuration nor the
// --fields flag selects one.
var DefaultFields = []string{
	"name",
	"url",
	"description",
	"visibility",
	"isPrivate",
	"isFork",
	"isArchived",
	"createdAt",
	"updatedAt",
}

// ValidateFields checks that every requested field is known and that the
// identity fields name and url are present. Deduplication and ordering key
// on url, so a snapshot without it would be meaningless.
func ValidateFields(fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("field set must not be empty")
	}

	known := make(map[string]struct{}, len(KnownFields))
	for _, f := range KnownFields {
		known[f] = struct{}{}
	}

	var hasName, hasURL bool
	for _, f := range fields {
		if _, ok := known[f]; !ok {
			return fmt.Errorf("unknown field %q", f)
		}
		if f == "name" {
			hasName = true
		}
		if f == "url" {
			hasURL = true
		}
	}

	if !hasName || !hasURL {
		return fmt.Errorf("field set must include name and url")
	}

	return nil
}

// projectRecord serializes one record restricted to the selected fields.
// It round-trips through JSON so the emitted names stay exactly as they
// are tagged on the record type.
func projectRecord(record github.Repository, keep map[string]struct{}) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record %q: %w", record.URL, err)
	}

	var full map[string]json.RawMessage
	if err := json.Unmarshal(data, &full); err != nil {
		return nil, fmt.Errorf("failed to reread record %q: %w", record.URL, err)
	}

	for key := range full {
		if _, ok := keep[key]; !ok {
			delete(full, key)
		}
	}

	return full, nil
}
