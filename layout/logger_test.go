package layout

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLoggerCapturesLayoutDecisions(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	mustLayout(t, newStub(), []string{"hello", "world"}, testParams(661))

	out := buf.String()
	for _, want := range []string{"layout start", "measure word", "word=hello", "line break", "new line", "line=1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	SetLogger(nil)
	t.Cleanup(func() { SetLogger(nil) })

	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("default logger should discard every level")
	}
	mustLayout(t, newStub(), []string{"hello", "world"}, testParams(661))
	if buf.Len() != 0 {
		t.Fatalf("nothing should be logged after SetLogger(nil):\n%s", buf.String())
	}
}
