/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package subagent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk shape of a subagent definition file.
type file struct {
	Subagents []Definition `yaml:"subagents"`
}

// Load parses subagent definitions from YAML.
func Load(data []byte) ([]Definition, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing subagent definitions: %w", err)
	}
	if len(f.Subagents) == 0 {
		return nil, fmt.Errorf("no subagents defined")
	}

	seen := map[string]bool{}
	for _, def := range f.Subagents {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("duplicate subagent name %q", def.Name)
		}
		seen[def.Name] = true
	}
	return f.Subagents, nil
}

// LoadFile reads subagent definitions from a YAML file.
func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading subagent file: %w", err)
	}
	return Load(data)
}

// Defaults returns the incident-management subagents: a monitoring
// specialist, an incident manager, and a report writer.
func Defaults() []Definition {
	return []Definition{{
		Name:        "monitoring_agent",
		Description: "Use for analyzing Datadog monitors, alert states, and monitoring data.",
		Instructions: `You are a Datadog monitoring specialist.

Your responsibilities:
- Analyze Datadog monitors and their states
- Identify critical alerts and their root causes
- Provide detailed analysis of monitoring data
- Suggest remediation steps for alerts

When analyzing monitors:
1. Check current state (OK, Alert, Warn, No Data)
2. Look at monitor metadata (tags, priority, type)
3. Identify patterns in alerting monitors
4. Prioritize by severity and impact

Always provide actionable insights.`,
	}, {
		Name:        "incident_agent",
		Description: "Use for creating, tracking, and coordinating incidents.",
		Instructions: `You are an incident management specialist.

Your responsibilities:
- Create and track incidents
- Coordinate incident response
- Link incidents to monitoring alerts
- Manage incident lifecycle (create, update, resolve)

When managing incidents:
1. Gather all relevant context from monitoring
2. Create clear, actionable incident descriptions
3. Set appropriate priority and severity
4. Track incident status and updates`,
	}, {
		Name:        "reporting_agent",
		Description: "Use for turning technical findings into readable reports and summaries.",
		Instructions: `You are a reporting and analytics specialist.

Your responsibilities:
- Generate incident reports
- Analyze trends in monitoring and incidents
- Create executive summaries
- Provide metrics and KPIs

Always structure reports with:
- Summary (2-3 sentences)
- Key Findings (bullet points)
- Recommendations (actionable items)`,
	}}
}
