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
	"errors"
	"strings"
	"testing"
	"time"
)

func fastRetryConfig(maxRetries int) *RetryConfig {
	return &RetryConfig{
		MaxRetries:        maxRetries,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestRetryClient_RetriesNetworkErrorThenSucceeds(t *testing.T) {
	repos := MakeRepositories("acme", "r", 2)
	mock := &MockClient{
		Script: []PageResult{
			{Err: errors.New("dial tcp 140.82.112.6:443: connection refused")},
			{Page: &RepositoryPage{Repositories: repos}},
		},
	}

	client := NewRetryClient(mock, fastRetryConfig(3))

	page, err := client.FetchRepositories(context.Background(), "acme", FetchOptions{PageSize: 50})
	if err != nil {
		t.Fatalf("FetchRepositories failed despite a retryable error: %v", err)
	}
	if len(page.Repositories) != 2 {
		t.Errorf("page holds %d repositories, want 2", len(page.Repositories))
	}
	if mock.CallCount != 2 {
		t.Errorf("CallCount = %d, want 2 (one failure, one retry)", mock.CallCount)
	}
}

func TestRetryClient_RetriesRateLimitError(t *testing.T) {
	mock := &MockClient{
		Script: []PageResult{
			{Err: errors.New("API rate limit exceeded")},
			{Page: &RepositoryPage{}},
		},
	}

	client := NewRetryClient(mock, fastRetryConfig(3))

	if _, err := client.FetchRepositories(context.Background(), "acme", FetchOptions{}); err != nil {
		t.Fatalf("FetchRepositories failed: %v", err)
	}
	if mock.CallCount != 2 {
		t.Errorf("CallCount = %d, want 2", mock.CallCount)
	}
}

func TestRetryClient_DoesNotRetryAuthError(t *testing.T) {
	mock := &MockClient{ShouldFailAuth: true}

	client := NewRetryClient(mock, fastRetryConfig(3))

	_, err := client.FetchRepositories(context.Background(), "acme", FetchOptions{})
	if err == nil {
		t.Fatal("FetchRepositories succeeded, want auth error")
	}
	if mock.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1 (auth failures must not be retried)", mock.CallCount)
	}
}

func TestRetryClient_GivesUpAfterMaxRetries(t *testing.T) {
	mock := &MockClient{
		Script: []PageResult{
			{Err: errors.New("no such host")},
			{Err: errors.New("no such host")},
			{Err: errors.New("no such host")},
			{Err: errors.New("no such host")},
		},
	}

	client := NewRetryClient(mock, fastRetryConfig(2))

	_, err := client.FetchRepositories(context.Background(), "acme", FetchOptions{})
	if err == nil {
		t.Fatal("FetchRepositories succeeded, want error after exhausted retries")
	}
	if mock.CallCount != 3 {
		t.Errorf("CallCount = %d, want 3 (initial attempt plus 2 retries)", mock.CallCount)
	}
	if !strings.Contains(err.Error(), "failed after 2 retries") {
		t.Errorf("error = %v, want mention of exhausted retries", err)
	}
}

func TestRetryClient_StopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	mock := &MockClient{
		Script: []PageResult{
			{Err: errors.New("connection refused")},
		},
	}

	client := NewRetryClient(mock, &RetryConfig{
		MaxRetries:        5,
		InitialBackoff:    time.Hour,
		MaxBackoff:        time.Hour,
		BackoffMultiplier: 2.0,
	})

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := client.FetchRepositories(ctx, "acme", FetchOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if mock.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1 (cancellation during backoff)", mock.CallCount)
	}
}

func TestRetryClient_GetAccountInfoPassesThrough(t *testing.T) {
	mock := &MockClient{Info: AccountInfo{TotalRepositories: 42}}

	client := NewRetryClient(mock, fastRetryConfig(1))

	info, err := client.GetAccountInfo(context.Background(), "acme")
	if err != nil {
		t.Fatalf("GetAccountInfo failed: %v", err)
	}
	if info.TotalRepositories != 42 {
		t.Errorf("TotalRepositories = %d, want 42", info.TotalRepositories)
	}
}

func TestCalculateBackoff_GrowthAndCap(t *testing.T) {
	r := &RetryClient{config: &RetryConfig{
		InitialBackoff:    time.Second,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
	}}

	// Jitter is ±10%, so check generous bounds rather than exact values.
	first := r.calculateBackoff(0)
	if first < 800*time.Millisecond || first > 1200*time.Millisecond {
		t.Errorf("attempt 0 backoff = %v, want roughly 1s", first)
	}

	capped := r.calculateBackoff(10)
	if capped > 11*time.Second {
		t.Errorf("attempt 10 backoff = %v, want at most the cap plus jitter", capped)
	}
}
