package logging

import (
	"context"
	"testing"
)

func TestWithRowID(t *testing.T) {
	ctx := WithRowID(context.Background(), "42")

	if got := GetRowID(ctx); got != "42" {
		t.Errorf("GetRowID() = %q, want %q", got, "42")
	}
}

func TestWithOperation(t *testing.T) {
	ctx := WithOperation(context.Background(), "update")

	if got := GetOperation(ctx); got != "update" {
		t.Errorf("GetOperation() = %q, want %q", got, "update")
	}
}

func TestGetters_NotPresent(t *testing.T) {
	ctx := context.Background()

	if got := GetRowID(ctx); got != "" {
		t.Errorf("GetRowID() = %q, want empty string", got)
	}
	if got := GetOperation(ctx); got != "" {
		t.Errorf("GetOperation() = %q, want empty string", got)
	}
}
