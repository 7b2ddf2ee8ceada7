//go:build windows

package startup

import (
	"os"
	"os/exec"
	"path/filepath"
)

func shortcutPath() string {
	appData := os.Getenv("APPDATA")
	return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", "Startup", "Claude Screenshot Daemon.lnk")
}

func IsEnabled() bool {
	_, err := os.Stat(shortcutPath())
	return err == nil
}

func Enable() error {
	exePath, err := os.Executable()
	if err != nil {
		return err
	}

	script := `$WshShell = New-Object -ComObject WScript.Shell; $Shortcut = $WshShell.CreateShortcut("` + shortcutPath() + `"); $Shortcut.TargetPath = "` + exePath + `"; $Shortcut.Save()`

	cmd := exec.Command("powershell", "-NoProfile", "-ExecutionPolicy", "Bypass", "-Command", script)
	return cmd.Run()
}

func Disable() error {
	return os.Remove(shortcutPath())
}
