package xslog

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "INFO", want: LevelInfo},
		{input: " Warn ", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "verbose", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    Config
		want   string
		hidden bool
	}{
		{name: "json", cfg: Config{Level: LevelInfo, Format: FormatJSON}, want: `"level":"WARN"`},
		{name: "text", cfg: Config{Level: LevelInfo, Format: FormatText}, want: "level=WARN"},
		{name: "error level hides warn", cfg: Config{Level: LevelError, Format: FormatText}, hidden: true},
		{name: "unknown level acts as info", cfg: Config{Level: "loud"}, want: `"msg":"breathe"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.cfg)
			logger.Debug("debug noise")
			logger.Warn("breathe", Exercise("box"))

			out := buf.String()
			if strings.Contains(out, "debug noise") {
				t.Errorf("debug record written: %s", out)
			}
			if tt.hidden {
				if out != "" {
					t.Errorf("output = %q, want empty", out)
				}
				return
			}
			if !strings.Contains(out, tt.want) || !strings.Contains(out, "box") {
				t.Errorf("output = %q, want it to contain %q", out, tt.want)
			}
		})
	}
}

func TestNewLoggerFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	var buf bytes.Buffer
	NewLoggerFromEnv(&buf).Debug("inhale")
	if !strings.Contains(buf.String(), "level=DEBUG") {
		t.Errorf("output = %q, want a text debug record", buf.String())
	}

	t.Setenv("LOG_FORMAT", "yaml")
	buf.Reset()
	NewLoggerFromEnv(&buf).Debug("exhale")
	if buf.Len() != 0 {
		t.Errorf("invalid format should fall back to info, got %q", buf.String())
	}
}
