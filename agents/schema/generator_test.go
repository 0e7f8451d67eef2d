/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type delegateInput struct {
	Task    string `json:"task" jsonschema:"required,description=The task to hand to the subagent"`
	Context string `json:"context,omitempty" jsonschema:"description=Optional extra context"`
}

func TestReflectType(t *testing.T) {
	s := ReflectType[delegateInput]()
	if s == nil {
		t.Fatal("ReflectType() returned nil schema")
	}

	props, required, err := Properties(s)
	if err != nil {
		t.Fatalf("Properties() returned error: %v", err)
	}

	if _, ok := props["task"]; !ok {
		t.Errorf("schema properties missing %q: %v", "task", props)
	}
	if _, ok := props["context"]; !ok {
		t.Errorf("schema properties missing %q: %v", "context", props)
	}
	if diff := cmp.Diff([]string{"task"}, required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}

	task, ok := props["task"].(map[string]any)
	if !ok {
		t.Fatalf("task property is %T, want map", props["task"])
	}
	if got := task["type"]; got != "string" {
		t.Errorf("task type = %v, want string", got)
	}
	if got := task["description"]; got != "The task to hand to the subagent" {
		t.Errorf("task description = %v", got)
	}
}
