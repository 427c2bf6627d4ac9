package logger

import (
	"testing"
)

func TestNew_Development(t *testing.T) {
	log, err := New(true, "")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log == nil {
		t.Fatal("expected non-nil logger")
	}

	// Should not panic
	log.Info("test message")
}

func TestNew_Production(t *testing.T) {
	log, err := New(false, "warn")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(false, "loudest")
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestMust(t *testing.T) {
	// Should not panic
	log := Must(true, "debug")
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
}
