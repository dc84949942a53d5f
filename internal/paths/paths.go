package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	AppDirName       = "bankgen"
	ConfigFileName   = "bankgen-config.json"
	ManifestFileName = "manifest.db"
	DirPerm          = 0755
	FilePerm         = 0644
)

// WindowsBankDir is the fixed bank location used on Windows.
const WindowsBankDir = `C:\SoundBanks\IthacaPlayer\instrument`

// DefaultOutputDir returns the default bank directory for the given platform:
//   - windows: C:\SoundBanks\IthacaPlayer\instrument
//   - otherwise: <home>/Soundbank/IthacaPlayer/instrument
//
// goos and home are passed in so the branching stays pure and testable.
func DefaultOutputDir(goos, home string) string {
	if goos == "windows" {
		return WindowsBankDir
	}
	return filepath.Join(home, "Soundbank", "IthacaPlayer", "instrument")
}

// ResolveOutputDir returns explicit if non-empty, else the platform default
// for the current OS and user.
func ResolveOutputDir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return DefaultOutputDir(runtime.GOOS, home)
}

// DataDir returns the platform-specific data directory for bankgen:
//   - Windows: %APPDATA%\bankgen
//   - Unix:    ~/.config/bankgen
//
// Falls back to os.TempDir()/bankgen if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
