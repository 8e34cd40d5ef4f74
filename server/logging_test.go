package server

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLoggingWritesFile(t *testing.T) {
	prevOut, prevFlags := log.Writer(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})

	dir := filepath.Join(t.TempDir(), "logs")
	f, err := setupLogging(dir, false)
	if err != nil {
		t.Fatalf("Failed to set up logging: %v", err)
	}
	log.Printf("marker line")
	f.Close()

	b, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "marker line") || !strings.Contains(string(b), "logging_test.go") {
		t.Errorf("Expected the line and its source file in the log, got %q", b)
	}
	if log.Writer() != f {
		t.Error("Expected only the log file as output without stdout mirroring")
	}
}

func TestSetupLoggingMirrorsStdout(t *testing.T) {
	prevOut, prevFlags := log.Writer(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})

	f, err := setupLogging(t.TempDir(), true)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if log.Writer() == f {
		t.Error("Expected the log file to be mirrored to stdout")
	}
}
