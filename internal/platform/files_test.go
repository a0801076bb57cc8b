package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestDefaultDestinationDir(t *testing.T) {
	dir, err := DefaultDestinationDir()
	if err != nil {
		t.Fatalf("Failed to get destination directory: %v", err)
	}

	if dir == "" {
		t.Fatal("Destination directory is empty")
	}

	if filepath.Base(dir) != DestinationDirName {
		t.Errorf("Expected directory to end with %q, got: %s", DestinationDirName, dir)
	}

	if filepath.Base(filepath.Dir(dir)) != "Pictures" {
		t.Errorf("Expected directory under Pictures, got: %s", dir)
	}
}

func TestUniquePath(t *testing.T) {
	tempDir := t.TempDir()

	// Free path comes back unchanged
	free := filepath.Join(tempDir, "IMG_0001.JPG")
	if got := UniquePath(free); got != free {
		t.Errorf("UniquePath(%q) = %q, expected unchanged", free, got)
	}

	// Occupied path gets a numeric suffix before the extension
	if err := os.WriteFile(free, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	want := filepath.Join(tempDir, "IMG_0001 (1).JPG")
	if got := UniquePath(free); got != want {
		t.Errorf("UniquePath(%q) = %q, expected %q", free, got, want)
	}

	// Counter keeps climbing past existing suffixed copies
	if err := os.WriteFile(want, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	want2 := filepath.Join(tempDir, "IMG_0001 (2).JPG")
	if got := UniquePath(free); got != want2 {
		t.Errorf("UniquePath(%q) = %q, expected %q", free, got, want2)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "nonexistent.txt")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}

	// Check that error contains the expected message
	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestOpenFileInManager_WithExistingFile(t *testing.T) {
	// Create a temporary file
	tempFile, err := os.CreateTemp("", "test_file_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())
	tempFile.Close()

	// This test just verifies the function doesn't panic and handles the file path
	// We can't really test the actual opening without user interaction
	err = OpenFileInManager(tempFile.Name())

	// On CI or headless systems, this might fail, which is expected
	// We're mainly testing that the function handles the path correctly
	if err != nil {
		t.Logf("OpenFileInManager failed (expected on headless systems): %v", err)
	}
}

func TestHasAppleDrivers_SimulateOverrides(t *testing.T) {
	t.Setenv(SimulateAppleEnv, "1")
	if !HasAppleDrivers() {
		t.Error("Expected drivers present with simulate override")
	}
	t.Setenv(SimulateAppleEnv, "")

	t.Setenv(SimulateNoAppleEnv, "1")
	if HasAppleDrivers() {
		t.Error("Expected drivers missing with simulate-no override")
	}
}
