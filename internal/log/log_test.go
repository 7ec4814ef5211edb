package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelDebug, true, true},
		{LevelInfo, false, true},
		{LevelError, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			buf.Reset()
			SetLevel(tt.level)

			Debug("debug line")
			Info("info line")
			Error("error line", errors.New("boom"))

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if !strings.Contains(out, "[ERROR] error line err=boom") {
				t.Errorf("error line missing: %q", out)
			}
		})
	}
	SetLevel(LevelInfo)
}

func TestKeyValueFormatting(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})
	SetLevel(LevelInfo)

	Info("event added", "id", 42, "date", "2024-03-10", "dangling")

	out := buf.String()
	if !strings.Contains(out, "[INFO] event added id=42 date=2024-03-10") {
		t.Errorf("unexpected line: %q", out)
	}
	if strings.Contains(out, "dangling") {
		t.Errorf("odd trailing value should be dropped: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" ERROR ": LevelError,
		"info":    LevelInfo,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "calmate.log")
	if err := OpenFile(path); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	SetLevel(LevelInfo)
	Info("written to file")
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing line: %q", data)
	}
}
