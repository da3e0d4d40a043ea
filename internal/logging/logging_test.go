package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "debug", want: zapcore.DebugLevel},
		{in: "INFO", want: zapcore.InfoLevel},
		{in: "", want: zapcore.InfoLevel},
		{in: " warn ", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "trace", want: zapcore.InfoLevel, wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseLevel(%q) err=%v wantErr=%v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q)=%v want=%v", tc.in, got, tc.want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, dev := range []bool{false, true} {
		logger, err := New("warn", dev)
		if err != nil {
			t.Fatalf("New(dev=%v): %v", dev, err)
		}
		if logger.Core().Enabled(zapcore.InfoLevel) {
			t.Fatalf("dev=%v: info enabled at warn level", dev)
		}
		if !logger.Core().Enabled(zapcore.ErrorLevel) {
			t.Fatalf("dev=%v: error disabled at warn level", dev)
		}
	}

	if _, err := New("loud", false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
