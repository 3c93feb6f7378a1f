package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/ardnew/scopelet/lang"
	"github.com/ardnew/scopelet/log"
	"github.com/ardnew/scopelet/pkg"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		pkg.Name: func() {
			err := Run(context.Background(), os.Exit, os.Args[1:]...)
			if err != nil {
				log.Error("run failed", slog.Any("error", err))
				os.Exit(1)
			}
		},
	})
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{Dir: "testdata/script"})
}

func TestRun_CompileErrorPosition(t *testing.T) {
	err := Run(t.Context(), func(int) {}, "render", "-e", "ab{.section a}")

	le, ok := err.(*lang.Error)
	if !ok {
		t.Fatalf("Run() error type = %T, want *lang.Error", err)
	}

	if !errors.Is(le, lang.ErrSyntax) {
		t.Errorf("Run() error = %v, want %v", le, lang.ErrSyntax)
	}

	pos, ok := le.Position()
	if !ok || pos.Line != 1 || pos.Column != 3 {
		t.Errorf("Position() = %+v, %v, want line 1 column 3", pos, ok)
	}

	var buf bytes.Buffer

	log.Make(&buf, log.WithTimeLayout("none")).Error("run failed", slog.Any("error", err))

	if !strings.Contains(buf.String(), "error.line=1 error.column=3") {
		t.Errorf("log output = %q, want position attributes", buf.String())
	}
}

func TestRootError(t *testing.T) {
	inner := lang.ErrResolution.With(slog.String("path", "x"))

	if got := rootError(errors.Join(inner, errors.New("other"))); got != error(inner) {
		t.Errorf("rootError(joined) = %v, want %v", got, inner)
	}

	if got := rootError(fmt.Errorf("wrapped: %w", inner)); got != error(inner) {
		t.Errorf("rootError(wrapped) = %v, want %v", got, inner)
	}

	plain := errors.New("plain")
	if got := rootError(plain); got != plain {
		t.Errorf("rootError(plain) = %v, want %v", got, plain)
	}

	if rootError(nil) != nil {
		t.Error("rootError(nil) != nil")
	}
}

func TestLogScan(t *testing.T) {
	tests := []struct {
		args       []string
		wantLevel  logLevel
		wantFormat logFormat
		wantPretty bool
		wantCaller bool
	}{
		{[]string{"render", "--log-level", "debug"}, "debug", "", false, false},
		{[]string{"--log-level=warn", "--log-format=json"}, "warn", "json", false, false},
		{[]string{"--log-pretty", "--log-caller"}, "", "", true, true},
		{[]string{"--log-pretty", "--no-log-pretty"}, "", "", false, false},
		{[]string{"--log-pretty=false", "--no-log-caller=false"}, "", "", false, true},
		{[]string{"--", "--log-level=debug"}, "", "", false, false},
	}

	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	for _, tt := range tests {
		var cfg logConfig

		cfg.scan(tt.args)

		if cfg.Level != tt.wantLevel || cfg.Format != tt.wantFormat ||
			cfg.Pretty != tt.wantPretty || cfg.Caller != tt.wantCaller {
			t.Errorf("scan(%q) = %+v, want level=%q format=%q pretty=%v caller=%v",
				tt.args, cfg, tt.wantLevel, tt.wantFormat, tt.wantPretty, tt.wantCaller)
		}
	}
}
