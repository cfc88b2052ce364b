package spool

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/pdexec/pdexec/internal/config"
)

func readAll(t *testing.T, s *Spool) string {
	t.Helper()
	r, err := s.Reader()
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return string(data)
}

func TestMemoryRoundTrip(t *testing.T) {
	s := New(config.SpoolMemory, 0)
	defer s.Cleanup()

	if _, err := io.WriteString(s, "line one\nline two\n"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := readAll(t, s); got != "line one\nline two\n" {
		t.Fatalf("round trip = %q", got)
	}
	n, err := s.Len()
	if err != nil || n != int64(len("line one\nline two\n")) {
		t.Fatalf("Len = %d, %v", n, err)
	}
}

func TestFileBackendSpillsAndCleansUp(t *testing.T) {
	s := New(config.SpoolFile, 0)

	if _, err := io.WriteString(s, "payload"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if s.file == nil {
		t.Fatal("file backend did not create a temp file")
	}
	name := s.file.Name()
	if got := readAll(t, s); got != "payload" {
		t.Fatalf("round trip = %q", got)
	}

	if err := s.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Fatalf("temp file %s still exists after Cleanup", name)
	}
	// Idempotent.
	if err := s.Cleanup(); err != nil {
		t.Fatalf("second Cleanup: %v", err)
	}
}

func TestAutoBackendSpillsPastLimit(t *testing.T) {
	s := New(config.SpoolAuto, 16)
	defer s.Cleanup()

	payload := strings.Repeat("x", 64)
	if _, err := io.WriteString(s, payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if s.file == nil {
		t.Fatal("auto backend did not spill past the memory limit")
	}
	if got := readAll(t, s); got != payload {
		t.Fatalf("round trip lost data: %d bytes", len(got))
	}
}

func TestAutoBackendStaysInMemoryUnderLimit(t *testing.T) {
	s := New(config.SpoolAuto, 1024)
	defer s.Cleanup()

	if _, err := io.WriteString(s, "small"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if s.file != nil {
		t.Fatal("auto backend spilled below the memory limit")
	}
	if got := readAll(t, s); got != "small" {
		t.Fatalf("round trip = %q", got)
	}
}

func TestCleanupWithoutSpillIsNoop(t *testing.T) {
	s := New(config.SpoolMemory, 0)
	if err := s.Cleanup(); err != nil {
		t.Fatalf("Cleanup on empty spool: %v", err)
	}
}
