package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerboseModeShowsDebugMessages(t *testing.T) {
	buf := new(bytes.Buffer)
	log := &Logger{
		level:  LevelInfo,
		output: buf,
	}

	log.Debug("debug message before verbose")
	if strings.Contains(buf.String(), "debug message before verbose") {
		t.Error("Debug message should not appear at Info level")
	}

	log.SetVerbose(true)

	log.Debug("debug message after verbose")
	if !strings.Contains(buf.String(), "debug message after verbose") {
		t.Error("Debug message should appear when verbose is enabled")
	}
}

func TestQuietModeSuppressesInfoMessages(t *testing.T) {
	buf := new(bytes.Buffer)
	log := &Logger{
		level:  LevelInfo,
		output: buf,
	}

	log.Info("info message before quiet")
	if !strings.Contains(buf.String(), "info message before quiet") {
		t.Error("Info message should appear at Info level")
	}

	buf.Reset()
	log.SetQuiet(true)

	log.Info("info message after quiet")
	if strings.Contains(buf.String(), "info message after quiet") {
		t.Error("Info message should not appear when quiet is enabled")
	}

	log.Error("error message in quiet mode")
	if !strings.Contains(buf.String(), "error message in quiet mode") {
		t.Error("Error message should appear even in quiet mode")
	}
}

func TestLogLevelHierarchy(t *testing.T) {
	tests := []struct {
		name        string
		level       Level
		expectDebug bool
		expectInfo  bool
		expectWarn  bool
		expectError bool
	}{
		{"debug level shows everything", LevelDebug, true, true, true, true},
		{"info level hides debug", LevelInfo, false, true, true, true},
		{"warn level hides info", LevelWarn, false, false, true, true},
		{"error level hides warnings", LevelError, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			log := &Logger{level: tt.level, output: buf}

			log.Debug("debug-marker")
			log.Info("info-marker")
			log.Warn("warn-marker")
			log.Error("error-marker")

			out := buf.String()
			if strings.Contains(out, "debug-marker") != tt.expectDebug {
				t.Errorf("debug visibility = %v, want %v", !tt.expectDebug, tt.expectDebug)
			}
			if strings.Contains(out, "info-marker") != tt.expectInfo {
				t.Errorf("info visibility = %v, want %v", !tt.expectInfo, tt.expectInfo)
			}
			if strings.Contains(out, "warn-marker") != tt.expectWarn {
				t.Errorf("warn visibility = %v, want %v", !tt.expectWarn, tt.expectWarn)
			}
			if strings.Contains(out, "error-marker") != tt.expectError {
				t.Errorf("error visibility = %v, want %v", !tt.expectError, tt.expectError)
			}
		})
	}
}

func TestLogDir(t *testing.T) {
	dir := LogDir()
	if !strings.Contains(dir, "archwatch") {
		t.Errorf("LogDir() = %q, want a path under the archwatch state dir", dir)
	}
}
