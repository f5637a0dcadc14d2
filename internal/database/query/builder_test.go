// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package query

import (
	"reflect"
	"testing"
)

func TestWhereBuilder_Empty(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder()
	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}
	clause, args := wb.Build()
	if clause != "1=1" {
		t.Errorf("Expected '1=1', got %q", clause)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %v", args)
	}
}

func TestWhereBuilder_AddIn(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder().AddIn("Interaction_Type", "Like", "Rate", "View")
	clause, args := wb.BuildWithPrefix()

	if clause != "WHERE Interaction_Type IN (?, ?, ?)" {
		t.Errorf("Unexpected clause: %q", clause)
	}
	if !reflect.DeepEqual(args, []any{"Like", "Rate", "View"}) {
		t.Errorf("Unexpected args: %v", args)
	}
}

func TestWhereBuilder_SkipsEmptyIn(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder().AddIn("Object_Type")
	if !wb.IsEmpty() {
		t.Error("Expected empty IN list to be skipped")
	}
}

func TestWhereBuilder_Combined(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder().
		AddClause("Star_GMag < ?", 12.0).
		AddIn("Star_SpType", "G2V")
	clause, args := wb.Build()

	if clause != "Star_GMag < ? AND Star_SpType IN (?)" {
		t.Errorf("Unexpected clause: %q", clause)
	}
	if len(args) != 2 || args[0] != 12.0 || args[1] != "G2V" {
		t.Errorf("Unexpected args: %v", args)
	}
}
