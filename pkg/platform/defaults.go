// SPDX-License-Identifier: MPL-2.0

package platform

const (
	// WindowsEditor is the editor launched on Windows when nothing else is configured.
	WindowsEditor = "notepad"
	// UnixEditor is the editor launched on every other platform when nothing else is configured.
	UnixEditor = "vi"

	// UnzipCommand extracts archives on Unix-like systems.
	UnzipCommand = "unzip"
	// ZipCommand creates archives on Unix-like systems.
	ZipCommand = "zip"
	// PowerShellCommand runs Expand-Archive/Compress-Archive on Windows.
	PowerShellCommand = "powershell"
)

// DefaultEditor returns the editor command name found on PATH by convention
// for the given platform.
func DefaultEditor(goos string) string {
	if IsWindows(goos) {
		return WindowsEditor
	}
	return UnixEditor
}

// ArchiveTools returns the program names the external archiver backend needs
// on the given platform, in the order they are used (extract, create).
func ArchiveTools(goos string) (extract, create string) {
	if IsWindows(goos) {
		return PowerShellCommand, PowerShellCommand
	}
	return UnzipCommand, ZipCommand
}
