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

package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shurcooL/graphql"

	rkerrors "github.com/repokeephq/repokeep/internal/errors"
	"github.com/repokeephq/repokeep/internal/giterror"
	"github.com/repokeephq/repokeep/pkg/version"
)

// RepositoryPrivacy is the GraphQL enum used for the privacy filter on the
// repositories connection. The type name must match GitHub's schema.
type RepositoryPrivacy string

// repositoryNode mirrors the fields requested for each repository in the
// repositories connection. primaryLanguage and the timestamps are nullable
// in the schema.
type repositoryNode struct {
	Name            graphql.String
	URL             graphql.String `graphql:"url"`
	Description     graphql.String
	Visibility      graphql.String
	IsPrivate       graphql.Boolean
	IsFork          graphql.Boolean
	IsArchived      graphql.Boolean
	StargazerCount  graphql.Int
	DiskUsage       graphql.Int
	CreatedAt       *time.Time
	UpdatedAt       *time.Time
	PushedAt        *time.Time
	PrimaryLanguage *struct {
		Name graphql.String
	} `graphql:"primaryLanguage"`
}

// GraphQLClient implements the GitHub Client interface using the GraphQL API.
// It provides cursor-based access to an account's repository list with
// error classification and safety features like response size limits.
type GraphQLClient struct {
	client    *graphql.Client
	token     string
	inspector giterror.Inspector
}

// NewGraphQLClient creates a new GitHub GraphQL client with the provided token and endpoint.
// The client is configured with:
//   - Authentication via the provided token
//   - Custom GraphQL endpoint URL (e.g., for GitHub Enterprise)
//   - Response size limiting to prevent memory issues
//   - User-Agent header for API compliance
//   - Connection pooling tuned for sequential API access
func NewGraphQLClient(token string, endpoint string) *GraphQLClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		ForceAttemptHTTP2:   true,
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  transport,
		},
	}

	return &GraphQLClient{
		client:    graphql.NewClient(endpoint, httpClient),
		token:     token,
		inspector: giterror.NewInspector(),
	}
}

// GetAccountInfo retrieves basic account metadata including the total
// repository count. It executes a minimal GraphQL query so the cost is
// negligible compared to a repository page fetch.
func (c *GraphQLClient) GetAccountInfo(ctx context.Context, account string) (*AccountInfo, error) {
	var query struct {
		RepositoryOwner struct {
			Repositories struct {
				TotalCount graphql.Int
			} `graphql:"repositories(ownerAffiliations: OWNER)"`
		} `graphql:"repositoryOwner(login: $login)"`
	}

	variables := map[string]interface{}{
		"login": graphql.String(account),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, account)
	}

	return &AccountInfo{
		TotalRepositories: int(query.RepositoryOwner.Repositories.TotalCount),
	}, nil
}

// FetchRepositories fetches one page of repositories owned by the account.
// Pagination is strictly cursor-based: the caller passes the EndCursor of
// the previous page via opts.After, and the returned page reports whether a
// continuation remains via HasNextPage. Results are ordered by name so that
// pages are stable across a run.
func (c *GraphQLClient) FetchRepositories(ctx context.Context, account string, opts FetchOptions) (*RepositoryPage, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var query struct {
		RepositoryOwner struct {
			Repositories struct {
				PageInfo struct {
					HasNextPage graphql.Boolean
					EndCursor   graphql.String
				}
				Nodes []repositoryNode
			} `graphql:"repositories(first: $first, after: $after, privacy: $privacy, isFork: $isFork, ownerAffiliations: OWNER, orderBy: {field: NAME, direction: ASC})"`
		} `graphql:"repositoryOwner(login: $login)"`
	}

	variables := map[string]interface{}{
		"login":   graphql.String(account),
		"first":   graphql.Int(int32(pageSize)), // #nosec G115 - pageSize is capped at 100
		"after":   (*graphql.String)(nil),
		"privacy": (*RepositoryPrivacy)(nil),
		"isFork":  (*graphql.Boolean)(nil),
	}

	if opts.After != "" {
		after := graphql.String(opts.After)
		variables["after"] = &after
	}
	if opts.Visibility != "" {
		privacy := RepositoryPrivacy(strings.ToUpper(opts.Visibility))
		variables["privacy"] = &privacy
	}
	if opts.SourceOnly {
		isFork := graphql.Boolean(false)
		variables["isFork"] = &isFork
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, account)
	}

	conn := query.RepositoryOwner.Repositories
	page := &RepositoryPage{
		HasNextPage:  bool(conn.PageInfo.HasNextPage),
		EndCursor:    string(conn.PageInfo.EndCursor),
		Repositories: make([]Repository, 0, len(conn.Nodes)),
	}

	for i := range conn.Nodes {
		page.Repositories = append(page.Repositories, convertRepositoryNode(&conn.Nodes[i]))
	}

	return page, nil
}

// convertRepositoryNode converts a GraphQL repository node to our domain model.
func convertRepositoryNode(n *repositoryNode) Repository {
	repo := Repository{
		Name:           string(n.Name),
		URL:            string(n.URL),
		Description:    string(n.Description),
		Visibility:     strings.ToLower(string(n.Visibility)),
		IsPrivate:      bool(n.IsPrivate),
		IsFork:         bool(n.IsFork),
		IsArchived:     bool(n.IsArchived),
		StargazerCount: int(n.StargazerCount),
		DiskUsage:      int(n.DiskUsage),
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
		PushedAt:       n.PushedAt,
	}

	if n.PrimaryLanguage != nil {
		repo.PrimaryLanguage = string(n.PrimaryLanguage.Name)
	}

	return repo
}

// mapError maps GraphQL errors to our domain errors with actionable messages
func (c *GraphQLClient) mapError(err error, account string) error {
	if err == nil {
		return nil
	}

	// Check rate limit first, as 403 can be both auth and rate limit
	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", rkerrors.ErrRateLimit)
	}

	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or GITHUB_TOKEN environment variable: %w", rkerrors.ErrInvalidToken)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("account '%s' not found. Please check the account name and your access permissions: %w", account, rkerrors.ErrAccountNotFound)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", rkerrors.ErrNetworkFailure)
	}

	return fmt.Errorf("failed to list repositories: %w", err)
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// authTransport adds authentication header and safety limits to HTTP requests
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("User-Agent", fmt.Sprintf("repokeep/%s", version.Version))

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Apply response size limit (10MB)
	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      10 * 1024 * 1024,
		}
	}

	return resp, nil
}
