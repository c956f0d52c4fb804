package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0600
)

// AppDirName is the per-user directory name used outside Android
const AppDirName = "bgm-player"

// tempSuffix marks partially written copies
const tempSuffix = ".part"

// IsAndroid reports whether the process runs inside an Android app
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so" // Fyne Android apps run as libdist.so
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetAppDataDir returns the directory holding intro.wav, loop.wav and data.txt
// when the app storage root is not available
func GetAppDataDir() (string, error) {
	if IsAndroid() {
		// Private files dir is exported by the Fyne Android runtime
		if dir := os.Getenv("FILESDIR"); dir != "" {
			return dir, nil
		}
		return "", fmt.Errorf("android files directory is not available")
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	return filepath.Join(configDir, AppDirName), nil
}

// FileExists reports whether path names an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// CopyToFile writes everything from src into dstPath. The content goes to a
// temporary sibling first, so a failed copy leaves any previous file intact.
func CopyToFile(dstPath string, src io.Reader) (int64, error) {
	if err := CreateDirectoryIfNotExists(filepath.Dir(dstPath)); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	tmpPath := dstPath + tempSuffix
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, DefaultFilePermissions)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	n, err := io.Copy(tmp, src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return n, fmt.Errorf("failed to copy into %s: %w", dstPath, err)
	}

	if err := os.Rename(tmpPath, dstPath); err != nil {
		os.Remove(tmpPath)
		return n, fmt.Errorf("failed to replace %s: %w", dstPath, err)
	}

	return n, nil
}
