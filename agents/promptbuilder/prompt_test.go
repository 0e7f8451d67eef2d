/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuild(t *testing.T) {
	p, err := New("Investigate {{monitor}} in {{repository}}.")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	p, err = p.Bind("monitor", "High CPU on api-gateway")
	if err != nil {
		t.Fatalf("Bind(monitor) returned error: %v", err)
	}
	p, err = p.Bind("repository", "acme/api-gateway")
	if err != nil {
		t.Fatalf("Bind(repository) returned error: %v", err)
	}

	got, err := p.Build()
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	want := "Investigate High CPU on api-gateway in acme/api-gateway."
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestBuildUnbound(t *testing.T) {
	p, err := New("Hello {{name}}")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if _, err := p.Build(); err == nil || !strings.Contains(err.Error(), "unbound placeholder: name") {
		t.Errorf("Build() error = %v, want unbound placeholder error", err)
	}
}

func TestBindErrors(t *testing.T) {
	p, err := New("{{a}}")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if _, err := p.Bind("missing", "x"); err == nil {
		t.Error("Bind() of unknown placeholder succeeded, want error")
	}

	bound, err := p.Bind("a", "x")
	if err != nil {
		t.Fatalf("Bind(a) returned error: %v", err)
	}
	if _, err := bound.Bind("a", "y"); err == nil {
		t.Error("second Bind() of same placeholder succeeded, want error")
	}

	// The original prompt is unaffected by bindings on the copy.
	if _, err := p.Bind("a", "z"); err != nil {
		t.Errorf("Bind() on original prompt returned error: %v", err)
	}
}

func TestBindJSON(t *testing.T) {
	p, err := New("Respond with:\n{{format}}")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	p, err = p.BindJSON("format", map[string]string{"status": "ok"})
	if err != nil {
		t.Fatalf("BindJSON() returned error: %v", err)
	}
	got, err := p.Build()
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	want := "Respond with:\n{\n  \"status\": \"ok\"\n}"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestBindXML(t *testing.T) {
	type question struct {
		XMLName struct{} `xml:"question"`
		Content string   `xml:",chardata"`
	}
	p, err := New("{{question}}")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	p, err = p.BindXML("question", question{Content: "why is <cpu> high?"})
	if err != nil {
		t.Fatalf("BindXML() returned error: %v", err)
	}
	got, err := p.Build()
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	want := "<question>why is &lt;cpu&gt; high?</question>"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{{
		name:     "unclosed placeholder",
		template: "Hello {{name",
	}, {
		name:     "invalid identifier",
		template: "Hello {{1name}}",
	}, {
		name:     "empty identifier",
		template: "Hello {{}}",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.template); err == nil {
				t.Errorf("New(%q) succeeded, want error", tt.template)
			}
		})
	}
}

func TestPlaceholders(t *testing.T) {
	p, err := New("{{a}} {{b}} {{a}}")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	want := map[string]struct{}{"a": {}, "b": {}}
	if diff := cmp.Diff(want, p.Placeholders()); diff != "" {
		t.Errorf("Placeholders() mismatch (-want +got):\n%s", diff)
	}
}
