package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   Debug,
		"":        Info,
		"WARNING": Warn,
		" error ": Error,
		"bogus":   Info,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON {
		t.Fatalf("expected json")
	}
	if ParseFormat("anything") != FormatText {
		t.Fatalf("expected text fallback")
	}
}

func TestZapLogger_WithAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(map[string]any{"component": "ledger"})

	l.Warn("persist failed", map[string]any{"error": errors.New("disk full"), "": "ignored", "keys": 3})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["component"] != "ledger" {
		t.Fatalf("missing base field: %#v", ctx)
	}
	if ctx["error"] != "disk full" {
		t.Fatalf("expected error field, got %#v", ctx["error"])
	}
	if _, ok := ctx[""]; ok {
		t.Fatalf("empty key should be dropped")
	}
}
