package app

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

func detectClipboard() ([]string, bool) {
	return detectClipboardInternal(runtime.GOOS, exec.LookPath)
}

func detectClipboardInternal(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	found := func(name string) (string, bool) {
		path, err := lookPath(name)
		return path, err == nil && path != ""
	}

	switch strings.ToLower(goos) {
	case "windows":
		for _, name := range []string{"clip.exe", "clip"} {
			if path, ok := found(name); ok {
				return []string{path}, true
			}
		}
		for _, ps := range []string{"pwsh", "powershell", "powershell.exe"} {
			if path, ok := found(ps); ok {
				return []string{path, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}, true
			}
		}
		return nil, false
	case "darwin":
		if path, ok := found("pbcopy"); ok {
			return []string{path}, true
		}
	}

	candidates := [][]string{
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
		{"pbcopy"},
	}
	for _, c := range candidates {
		if path, ok := found(c[0]); ok {
			return append([]string{path}, c[1:]...), true
		}
	}
	return nil, false
}

// normalizeClipboardPath renders a path the way the host shell expects it.
func normalizeClipboardPath(p string) string {
	return filepath.FromSlash(filepath.Clean(p))
}

// copyToClipboard pipes one path per line into the clipboard command.
func copyToClipboard(command []string, paths []string) error {
	lines := make([]string, len(paths))
	for i, p := range paths {
		lines[i] = normalizeClipboardPath(p)
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n"))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("clipboard %s: %w (%s)", filepath.Base(command[0]), err, strings.TrimSpace(string(out)))
	}
	return nil
}
