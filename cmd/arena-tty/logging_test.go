package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLogging_DiscardsWithoutDebug(t *testing.T) {
	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("got a log file with debug off")
	}
	if log.Writer() != io.Discard {
		t.Fatalf("log writer = %v, want io.Discard", log.Writer())
	}
}

func TestSetupLogging_WritesFileWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)
	f := setupLogging(true)
	if f == nil {
		t.Fatal("no log file with debug on")
	}
	defer f.Close()
	if w := log.Writer(); w == os.Stdout || w == os.Stderr {
		t.Fatal("log writes to the terminal")
	}
	log.Println("match started")
	info, err := os.Stat(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("stat log: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("log file is empty")
	}
}

func TestSetupLogging_RotatesLargeLog(t *testing.T) {
	defer os.RemoveAll(logDir)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0o644); err != nil {
		t.Fatal(err)
	}
	f := setupLogging(true)
	if f == nil {
		t.Fatal("no log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Fatal("large log was not rotated")
	}
	if info, err := os.Stat(logPath); err != nil || info.Size() > maxLogSize {
		t.Fatalf("fresh log: %v %v", info, err)
	}
}
