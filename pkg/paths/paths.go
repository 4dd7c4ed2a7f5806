package paths

import (
	"os"
	"path/filepath"
)

// GetConfigDir returns the user's config directory for dexora.
//
// If the home directory cannot be determined, it falls back to a directory
// under the system temporary directory.
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".dexora-config"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".config", "dexora"))
}

// GetDataDir returns the user's data directory for dexora (logs).
func GetDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".dexora"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".dexora"))
}

// GetHomeDir returns the user's home directory.
//
// Returns an empty string if the home directory cannot be determined.
func GetHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Clean(homeDir)
}

func ConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

func DebugLogFile() string {
	return filepath.Join(GetDataDir(), "dexora.debug.log")
}
