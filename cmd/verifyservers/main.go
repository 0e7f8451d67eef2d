/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// verifyservers checks the local MCP setup end to end: which servers are
// configured, whether each one can be dialed, what tools it declares, and
// whether the GitHub token carries the scopes the GitHub server needs.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/opsmend/opsmend/githubauth"
	"github.com/opsmend/opsmend/mcpclient"
	"github.com/opsmend/opsmend/mcpservers"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	servers := mcpservers.All(ctx)
	if len(servers) == 0 {
		clog.FatalContextf(ctx, "no MCP servers configured; set DD_API_KEY/DD_APP_KEY and/or GITHUB_PERSONAL_ACCESS_TOKEN")
	}
	fmt.Printf("Found %d MCP server(s) configured\n\n", len(servers))

	ok := true
	if _, configured := servers["datadog"]; configured {
		path, err := mcpservers.LookupDatadogServer()
		if err != nil {
			clog.ErrorContextf(ctx, "Datadog server binary check failed: %v", err)
			ok = false
		} else {
			fmt.Printf("Datadog MCP server binary: %s\n\n", path)
		}
	}

	table := newTable([]string{"Server", "Tool", "Description"}, os.Stdout)
	for name, cfg := range servers {
		tools, err := inventory(ctx, name, cfg)
		if err != nil {
			clog.ErrorContextf(ctx, "server %s failed verification: %v", name, err)
			_ = table.Append([]string{name, "-", fmt.Sprintf("ERROR: %v", err)})
			ok = false
			continue
		}
		for _, row := range tools {
			_ = table.Append(row)
		}
	}
	_ = table.Render()

	if token := os.Getenv("GITHUB_PERSONAL_ACCESS_TOKEN"); token != "" {
		fmt.Println()
		info, err := githubauth.Verify(ctx, githubauth.NewClient(ctx, token))
		switch {
		case err != nil:
			clog.ErrorContextf(ctx, "GitHub token verification failed: %v", err)
			ok = false
		case len(info.MissingScopes) > 0:
			clog.WarnContextf(ctx, "GitHub token for %s is missing scopes: %s",
				info.Login, strings.Join(info.MissingScopes, ", "))
		default:
			fmt.Printf("GitHub token OK: authenticated as %s\n", info.Login)
		}
	}

	if !ok {
		os.Exit(1)
	}
}

// inventory dials one server and returns a table row per declared tool.
func inventory(ctx context.Context, name string, cfg mcpservers.ServerConfig) ([][]string, error) {
	session, err := mcpclient.Dial(ctx, name, cfg)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	tools, err := session.Tools(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(tools))
	for _, tool := range tools {
		rows = append(rows, []string{name, tool.Name, firstLine(tool.Description)})
	}
	return rows, nil
}

// firstLine truncates multi-line tool descriptions for table display.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// newTable creates a markdown-style table writer.
func newTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 100,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{Left: tw.On, Top: tw.Off, Right: tw.On, Bottom: tw.Off},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
