/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package promptbuilder assembles prompts from templates with named
// placeholders. Placeholders are written {{name}} and must each be bound
// exactly once before Build; building with an unbound placeholder is an
// error, which keeps prompt construction honest as templates grow.
package promptbuilder
