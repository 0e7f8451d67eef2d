/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"maps"
	"strings"
	"unicode"
)

// Prompt is a template with named placeholders. Binding methods return a
// new Prompt, so a parsed template can be reused across requests.
type Prompt struct {
	template string
	bound    map[string]*string // nil value = declared but unbound
}

// New parses a template and records its placeholders.
func New(template string) (*Prompt, error) {
	p := &Prompt{template: template, bound: map[string]*string{}}
	if err := walk(template, func(name string) error {
		if _, ok := p.bound[name]; !ok {
			p.bound[name] = nil
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return p, nil
}

// Placeholders returns the set of placeholder names in the template.
func (p *Prompt) Placeholders() map[string]struct{} {
	names := make(map[string]struct{}, len(p.bound))
	for name := range p.bound {
		names[name] = struct{}{}
	}
	return names
}

// Bind binds a string value to a placeholder.
func (p *Prompt) Bind(name, value string) (*Prompt, error) {
	return p.bind(name, value)
}

// BindJSON marshals data as indented JSON and binds it to a placeholder.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s as JSON: %w", name, err)
	}
	return p.bind(name, string(b))
}

// BindXML marshals data as indented XML and binds it to a placeholder.
// XML is the safe choice for user-controlled input embedded in prompts.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	b, err := xml.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s as XML: %w", name, err)
	}
	return p.bind(name, string(b))
}

func (p *Prompt) bind(name, value string) (*Prompt, error) {
	existing, ok := p.bound[name]
	if !ok {
		return nil, fmt.Errorf("placeholder %q not found in template", name)
	}
	if existing != nil {
		return nil, fmt.Errorf("placeholder %q already bound", name)
	}
	next := &Prompt{template: p.template, bound: maps.Clone(p.bound)}
	next.bound[name] = &value
	return next, nil
}

// Build renders the template, failing if any placeholder is unbound.
func (p *Prompt) Build() (string, error) {
	var out strings.Builder
	rest := p.template
	if err := walkEmit(rest, &out, func(name string) (string, error) {
		v := p.bound[name]
		if v == nil {
			return "", fmt.Errorf("unbound placeholder: %s", name)
		}
		return *v, nil
	}); err != nil {
		return "", err
	}
	return out.String(), nil
}

// walk visits every placeholder name in template order.
func walk(template string, visit func(name string) error) error {
	var discard strings.Builder
	return walkEmit(template, &discard, func(name string) (string, error) {
		return "", visit(name)
	})
}

// walkEmit copies template text into out, replacing each {{name}} with the
// value returned by resolve.
func walkEmit(template string, out *strings.Builder, resolve func(name string) (string, error)) error {
	for len(template) > 0 {
		start := strings.Index(template, "{{")
		if start == -1 {
			out.WriteString(template)
			return nil
		}
		out.WriteString(template[:start])

		end := strings.Index(template[start:], "}}")
		if end == -1 {
			return fmt.Errorf("unclosed placeholder: missing '}}'")
		}
		end += start + 2

		name := strings.TrimSpace(template[start+2 : end-2])
		if !validName(name) {
			return fmt.Errorf("invalid placeholder name %q", name)
		}

		value, err := resolve(name)
		if err != nil {
			return err
		}
		out.WriteString(value)
		template = template[end:]
	}
	return nil
}

// validName requires a leading letter followed by letters, digits, or
// underscores.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
