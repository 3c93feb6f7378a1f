package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func decodeJSON(t *testing.T, b []byte) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("invalid JSON %q: %v", b, err)
	}

	return m
}

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}

	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace))
	logger.Trace("trace message")

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("trace message not logged with TRACE level: %q", buf.String())
	}

	buf.Reset()

	logger = Make(&buf, WithLevel(LevelError))
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none"))
	logger.Warn("careful", slog.String("key", "value"), slog.Int("n", 3))

	m := decodeJSON(t, buf.Bytes())
	if _, ok := m["time"]; ok {
		t.Error("time present with layout none")
	}

	if m["level"] != "WARN" || m["msg"] != "careful" || m["key"] != "value" ||
		m["n"] != float64(3) {
		t.Errorf("unexpected record: %v", m)
	}
}

func TestLogger_PrettyJSON_Indents(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(true))
	logger.Info("indented", slog.String("k", "v"))

	if !strings.Contains(buf.String(), "\n  \"msg\": \"indented\"") {
		t.Errorf("expected indented JSON, got %q", buf.String())
	}

	decodeJSON(t, buf.Bytes())
}

func TestLogger_PrettyText(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(true), WithTimeLayout("none")).
		With(slog.String("component", "lang"))

	logger.WithGroup("expand").Info("done",
		slog.String("path", "user.name"),
		slog.Bool("ok", true),
		slog.Group("stats", slog.Int("bytes", 12)),
	)

	out := buf.String()

	for _, want := range []string{
		"level=INFO",
		"msg=done",
		"component=lang",
		"expand.path=user.name",
		"expand.ok=true",
		"expand.stats.bytes=12",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	if strings.Contains(out, "time=") {
		t.Errorf("time present with layout none: %q", out)
	}
}

type loggedError struct{}

func (loggedError) Error() string { return "boom" }

func (loggedError) LogValue() slog.Value {
	return slog.GroupValue(slog.String("error", "boom"), slog.Int("line", 4))
}

func TestLogger_PrettyText_ResolvesLogValuer(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(true), WithTimeLayout("none"))
	logger.Error("failed", slog.Any("error", loggedError{}))

	out := buf.String()
	if !strings.Contains(out, "error.error=boom") || !strings.Contains(out, "error.line=4") {
		t.Errorf("LogValuer not resolved: %q", out)
	}
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCaller(true), WithFormat(FormatJSON))
	logger.Info("test message")

	src, _ := decodeJSON(t, buf.Bytes())["source"].(map[string]any)
	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("expected caller in log_test.go, got %v", src)
	}

	buf.Reset()
	logger.InfoContext(t.Context(), "with context")

	src, _ = decodeJSON(t, buf.Bytes())["source"].(map[string]any)
	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("expected caller in log_test.go, got %v", src)
	}
}

func TestLogger_Wrap_OverridesConfig(t *testing.T) {
	var first, second bytes.Buffer

	logger := Make(&first, WithFormat(FormatJSON))
	wrapped := logger.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("debug")

	if first.Len() != 0 {
		t.Error("wrapped logger wrote to original output")
	}

	if decodeJSON(t, second.Bytes())["msg"] != "debug" {
		t.Errorf("unexpected output: %q", second.String())
	}

	if logger.Level() != LevelInfo {
		t.Error("Wrap modified the original logger")
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var logger Logger

	logger.Trace("ignored")
	logger.InfoContext(context.Background(), "ignored")
	logger.With(slog.String("a", "b")).Error("ignored")

	if logger.Enabled(t.Context(), LevelError) {
		t.Error("zero logger reports enabled")
	}

	if logger.Level() != DefaultLevel || logger.Format() != DefaultFormat {
		t.Error("zero logger has unexpected configuration")
	}

	var buf bytes.Buffer

	logger.Wrap(WithOutput(&buf)).Info("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Error("Wrap on zero logger did not create a usable logger")
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	var (
		buf syncBuffer
		wg  sync.WaitGroup
	)

	logger := Make(&buf, WithFormat(FormatJSON))

	for i := range 16 {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			logger.With(slog.Int("worker", n)).Info("message")
			_ = logger.Level()
		}(i)
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 16 {
		t.Errorf("expected 16 records, got %d", got)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func TestPackage_DefaultLogger(t *testing.T) {
	original := Default()
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithFormat(FormatJSON))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			m := decodeJSON(t, buf.Bytes())
			if m["level"] != tt.level || m["key"] != "value" {
				t.Errorf("unexpected record: %v", m)
			}
		})
	}

	buf.Reset()
	With(slog.String("scope", "pkg")).Info("attrs")

	if decodeJSON(t, buf.Bytes())["scope"] != "pkg" {
		t.Errorf("With() attribute missing: %q", buf.String())
	}

	buf.Reset()
	ErrorContext(t.Context(), "ctx", slog.Any("error", errors.New("x")))

	if decodeJSON(t, buf.Bytes())["error"] != "x" {
		t.Errorf("unexpected record: %q", buf.String())
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Make(&bytes.Buffer{}, WithFormat(FormatJSON))

	for b.Loop() {
		logger.Info("benchmark message", slog.Int("n", 1))
	}
}

func BenchmarkLogger_Info_Pretty(b *testing.B) {
	logger := Make(&bytes.Buffer{}, WithPretty(true))

	for b.Loop() {
		logger.Info("benchmark message", slog.Int("n", 1))
	}
}

func BenchmarkLogger_Trace_Disabled(b *testing.B) {
	logger := Make(&bytes.Buffer{})

	for b.Loop() {
		logger.Trace("not logged", slog.Int("n", 1))
	}
}
