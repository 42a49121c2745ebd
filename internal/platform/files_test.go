package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func stubCommands(t *testing.T) *[][]string {
	t.Helper()
	var calls [][]string
	original := commandRunner
	commandRunner = func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return nil
	}
	t.Cleanup(func() { commandRunner = original })
	return &calls
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir", "nested")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if filepath.Base(downloadsDir) != DownloadsDirName {
		t.Errorf("Expected directory to end with %q, got: %s", DownloadsDirName, downloadsDir)
	}
}

func TestGetHomeVideosDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	videosDir, err := GetHomeVideosDir()
	if err != nil {
		t.Fatalf("Failed to get videos directory: %v", err)
	}

	expected := VideosDirName
	if runtime.GOOS == OSDarwin {
		expected = MoviesDirName
	}
	if filepath.Base(videosDir) != expected {
		t.Errorf("Expected directory to end with %q, got: %s", expected, videosDir)
	}
}

func TestOpenFileWithDefaultApp_NonExistentFile(t *testing.T) {
	calls := stubCommands(t)

	err := OpenFileWithDefaultApp(filepath.Join(t.TempDir(), "nonexistent.mp4"))
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
	if len(*calls) != 0 {
		t.Errorf("Expected no command for missing file, got %v", *calls)
	}
}

func TestOpenFileWithDefaultApp_EmptyPath(t *testing.T) {
	stubCommands(t)

	if err := OpenFileWithDefaultApp(""); err == nil {
		t.Error("Expected error for empty path, got nil")
	}
}

func TestOpenFileWithDefaultApp_ExistingFile(t *testing.T) {
	if runtime.GOOS != OSLinux && runtime.GOOS != OSDarwin && runtime.GOOS != OSWindows {
		t.Skip("unsupported operating system")
	}
	calls := stubCommands(t)

	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	if err := OpenFileWithDefaultApp(path); err != nil {
		t.Fatalf("OpenFileWithDefaultApp() error = %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("Expected one command, got %v", *calls)
	}
	call := (*calls)[0]
	if call[len(call)-1] != path {
		t.Errorf("Expected command to end with %s, got %v", path, call)
	}
}

func TestOpenFileInManager_LinuxOpensParentDir(t *testing.T) {
	if runtime.GOOS != OSLinux {
		t.Skip("linux only")
	}
	calls := stubCommands(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	if err := OpenFileInManager(path); err != nil {
		t.Fatalf("OpenFileInManager() error = %v", err)
	}
	if len(*calls) != 1 || (*calls)[0][0] != XDGOpenCommand || (*calls)[0][1] != dir {
		t.Errorf("Expected %s %s, got %v", XDGOpenCommand, dir, *calls)
	}
}
