package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
	if OrNop() == nil {
		t.Fatal("OrNop returned nil")
	}

	Named("test").Info(context.Background(), "test message", String("k", "v"))
}

func TestNewWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelDebug).Named("engine")

	l.Debug(context.Background(), "page fetched",
		String("match", "m-1"),
		Int("page", 2),
		Int64("events", 1000),
		Bool("short", false),
		Duration("took", 3*time.Millisecond),
		Error(errors.New("boom")),
	)

	out := buf.String()
	for _, want := range []string{"page fetched", "component=engine", "match=m-1", "page=2", "events=1000", "short=false", "error=boom"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("expected %q in output %q", want, out)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelWarn)
	l.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	l.Warn(context.Background(), "shown")
	if buf.Len() == 0 {
		t.Fatal("expected warn to be written")
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error(context.Background(), "nothing")
	l.Named("x").Warn(nil, "nil context is tolerated") //nolint:staticcheck // exercising nil ctx
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if err := SetLevelString("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestInitToWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := InitTo(&buf); err != nil {
		t.Fatalf("InitTo: %v", err)
	}
	defer func() { _ = Init() }()

	Get().Info(context.Background(), "seeded", Int("matches", 3))
	if !bytes.Contains(buf.Bytes(), []byte("matches=3")) {
		t.Errorf("record not written to writer: %q", buf.String())
	}
}
