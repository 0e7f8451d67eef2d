/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package githubauth verifies that the GitHub personal access token given
// to the GitHub MCP server actually works and carries the scopes the
// server's tools need.
package githubauth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"
)

// RequiredScopes are the classic-token scopes the GitHub MCP server needs
// for repository access, org reads, and Actions workflows.
var RequiredScopes = []string{"repo", "read:org", "workflow"}

// TokenInfo describes a verified token.
type TokenInfo struct {
	// Login is the user the token authenticates as.
	Login string
	// Scopes are the OAuth scopes granted to the token.
	Scopes []string
	// MissingScopes are required scopes the token lacks. Fine-grained
	// tokens report no scopes at all; they show up here as missing.
	MissingScopes []string
}

// NewClient builds an authenticated GitHub API client for the token.
func NewClient(ctx context.Context, token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// Verify authenticates with the token and reports its login and scopes.
// A token that authenticates but lacks required scopes is not an error;
// callers decide how loudly to complain about MissingScopes.
func Verify(ctx context.Context, client *github.Client) (*TokenInfo, error) {
	user, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("authenticating with GitHub: %w", err)
	}

	scopes := parseScopes(resp.Header.Get("X-OAuth-Scopes"))
	return &TokenInfo{
		Login:         user.GetLogin(),
		Scopes:        scopes,
		MissingScopes: missingScopes(scopes),
	}, nil
}

// parseScopes splits the comma-separated scope header.
func parseScopes(header string) []string {
	var scopes []string
	for _, s := range strings.Split(header, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

// missingScopes returns the required scopes not present in granted.
// Having repo-family parents (admin does not exist for repo, but e.g.
// admin:org implies read:org) is handled by prefix matching on the family.
func missingScopes(granted []string) []string {
	has := func(want string) bool {
		for _, g := range granted {
			if g == want {
				return true
			}
			// admin:org and write:org imply read:org.
			if family, ok := strings.CutPrefix(want, "read:"); ok {
				if g == "admin:"+family || g == "write:"+family {
					return true
				}
			}
		}
		return false
	}

	var missing []string
	for _, want := range RequiredScopes {
		if !has(want) {
			missing = append(missing, want)
		}
	}
	return missing
}
