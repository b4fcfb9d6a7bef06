package shared

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	if logger == nil {
		t.Fatal("expected logger to be created")
	}

	logger.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected log output to contain message, got %q", buf.String())
	}

	t.Run("Nil Writer Defaults", func(t *testing.T) {
		if NewLogger(nil) == nil {
			t.Error("expected logger with default writer")
		}
	})
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected unique IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected UUID string length 36, got %d", len(a))
	}
}

func TestMarshalJSON(t *testing.T) {
	v := map[string]int{"tracks": 3}

	t.Run("Compact", func(t *testing.T) {
		data, err := MarshalJSON(v, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != `{"tracks":3}` {
			t.Errorf("unexpected output: %s", data)
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		data, err := MarshalJSON(v, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(data), "\n") {
			t.Error("expected indented output")
		}
	})

	t.Run("Unmarshalable", func(t *testing.T) {
		if _, err := MarshalJSON(make(chan int), false); err == nil {
			t.Error("expected error for unmarshalable value")
		}
	})
}
