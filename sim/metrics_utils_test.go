package sim

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSavetoFile_CommaSeparated(t *testing.T) {
	// GIVEN some extinction times
	path := filepath.Join(t.TempDir(), "times.txt")

	// WHEN saved
	if err := SavetoFile([]int{1, 2, 7}, path); err != nil {
		t.Fatalf("SavetoFile: %v", err)
	}

	// THEN the file holds comma-separated values
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "1, 2, 7" {
		t.Errorf("file content = %q, want %q", got, "1, 2, 7")
	}
}

func TestSavetoFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := SavetoFile(nil, path); err != nil {
		t.Fatalf("SavetoFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file, got %q", data)
	}
}

func TestSavetoFile_BadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "times.txt")
	if err := SavetoFile([]int{1}, path); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWriteResults_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	var err error
	captureStdout(t, func() {
		err = WriteResults("Test", map[string]int{"a": 1}, path)
	})
	if err == nil {
		t.Error("expected error writing to missing directory")
	}
}
