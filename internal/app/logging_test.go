package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelOff, "OFF"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		ok       bool
	}{
		{"debug", LogLevelDebug, true},
		{"DEBUG", LogLevelDebug, true},
		{"info", LogLevelInfo, true},
		{" Warn ", LogLevelWarn, true},
		{"warning", LogLevelWarn, true},
		{"ERROR", LogLevelError, true},
		{"off", LogLevelOff, true},
		{"", LogLevelInfo, true},
		{"verbose", LogLevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLogLevel(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseLogLevel(%q) = %v, %v, expected %v, %v", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelDebug,
		Output: &buf,
		Prefix: "test",
	})

	logger.Debug("debug message")
	logger.Info("info %d", 2)
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	for _, want := range []string{"[DEBUG]", "[INFO] test: info 2", "[WARN]", "[ERROR]"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestLogger_LogLevel_Filtering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelWarn,
		Output: &buf,
	})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "debug") || strings.Contains(output, "info") {
		t.Errorf("filtered levels written:\n%s", output)
	}
	if !strings.Contains(output, "warn") || !strings.Contains(output, "error") {
		t.Errorf("expected warn and error:\n%s", output)
	}

	buf.Reset()
	logger.SetLevel(LogLevelOff)
	logger.Error("silenced")
	if buf.Len() != 0 {
		t.Errorf("LogLevelOff wrote %q", buf.String())
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger := base.WithComponent("dispatcher").WithField("key", "php")
	logger.Info("dispatched")

	if got := buf.String(); !strings.Contains(got, "{component=dispatcher, key=php}") {
		t.Errorf("fields not sorted or missing: %q", got)
	}

	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "component=") {
		t.Errorf("parent logger gained fields: %q", buf.String())
	}
}

func TestLogger_DerivedLevelIndependent(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	child := base.WithComponent("x")

	child.SetLevel(LogLevelError)
	if base.Level() != LogLevelInfo {
		t.Errorf("base level changed to %v", base.Level())
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Error("nothing")
	NullLogger.WithComponent("x").Info("nothing")
}
